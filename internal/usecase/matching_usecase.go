package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dev-match/internal/domain/developer"
	"dev-match/internal/domain/match"
	"dev-match/internal/domain/matching"
	"dev-match/internal/domain/project"
	"dev-match/internal/pkg/logger"
	"dev-match/internal/repository"
	"dev-match/internal/usecase/evaluator"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type OutcomeKind string

const (
	OutcomeQuestion OutcomeKind = "question"
	OutcomeMatches  OutcomeKind = "matches"
)

// Outcome is the result of one orchestrator turn. Question is set for
// OutcomeQuestion; Matches and Requirements for OutcomeMatches.
type Outcome struct {
	Kind         OutcomeKind
	ProjectID    uuid.UUID
	Question     string
	History      project.Conversation
	Matches      []matching.Result
	Requirements matching.Requirements
}

type StartInput struct {
	Project     project.Project
	Message     string
	ChatHistory project.Conversation
}

type ContinueInput struct {
	ProjectID uuid.UUID
	Message   string
}

type Evaluator interface {
	Evaluate(ctx context.Context, p project.Project, history project.Conversation, latest string) (evaluator.Result, error)
}

// MatchNotifier is told about every completed matching run.
type MatchNotifier interface {
	NotifyMatchesReady(projectID uuid.UUID, count int)
}

type MatchingUsecase interface {
	StartProject(ctx context.Context, in StartInput) (Outcome, error)
	ContinueProject(ctx context.Context, in ContinueInput) (Outcome, error)
	ListMatches(ctx context.Context, projectID uuid.UUID) ([]repository.StoredMatch, error)
	History(ctx context.Context, projectID uuid.UUID) (project.Conversation, error)
}

// Matching drives a project from Gathering to Matching. Each call is one
// turn: the evaluator either asks a question, which is logged and returned,
// or declares the requirements sufficient, which scores the developer pool.
type Matching struct {
	projects  repository.ProjectRepository
	history   repository.ChatHistoryRepository
	matches   repository.MatchRepository
	pool      DeveloperPool
	evaluator Evaluator
	notifier  MatchNotifier
	policy    matching.Policy
	logger    *zap.Logger
}

type MatchingDeps struct {
	Projects  repository.ProjectRepository
	History   repository.ChatHistoryRepository
	Matches   repository.MatchRepository
	Pool      DeveloperPool
	Evaluator Evaluator
	Notifier  MatchNotifier
	Policy    matching.Policy
	Logger    *zap.Logger
}

func NewMatchingUsecase(d MatchingDeps) *Matching {
	return &Matching{
		projects:  d.Projects,
		history:   d.History,
		matches:   d.Matches,
		pool:      d.Pool,
		evaluator: d.Evaluator,
		notifier:  d.Notifier,
		policy:    d.Policy,
		logger:    logger.OrNop(d.Logger),
	}
}

// StartProject stores a new project and runs its first turn. Any chat history
// carried by the request is stored after the project summary.
func (u *Matching) StartProject(ctx context.Context, in StartInput) (Outcome, error) {
	if err := ValidateProject(in.Project); err != nil {
		return Outcome{}, err
	}
	message := strings.TrimSpace(in.Message)

	p := in.Project
	p.ID = uuid.Nil
	p.Status = project.StatusDraft
	created, err := u.projects.Create(ctx, p)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: create project: %w", ErrInternal, err)
	}
	u.logger.Info("project created", zap.String("project_id", created.ID.String()), zap.String("title", created.Title))

	if _, err := u.history.Append(ctx, created.ID, project.RoleSystem, evaluator.Summary(created)); err != nil {
		return Outcome{}, fmt.Errorf("%w: store summary: %w", ErrInternal, err)
	}

	var conv project.Conversation
	for _, t := range in.ChatHistory.Dialogue() {
		text := strings.TrimSpace(t.Text)
		if text == "" {
			continue
		}
		if _, err := u.history.Append(ctx, created.ID, t.Role, text); err != nil {
			return Outcome{}, fmt.Errorf("%w: store chat history: %w", ErrInternal, err)
		}
		conv = conv.Append(t.Role, text)
	}

	return u.turn(ctx, created, conv, message)
}

// ContinueProject appends a client reply to an existing project and runs the
// next turn.
func (u *Matching) ContinueProject(ctx context.Context, in ContinueInput) (Outcome, error) {
	message := strings.TrimSpace(in.Message)
	fields := map[string]string{}
	if in.ProjectID == uuid.Nil {
		fields["project_id"] = "is required"
	}
	if message == "" {
		fields["message"] = "is required"
	}
	if len(fields) > 0 {
		return Outcome{}, &ValidationError{Fields: fields}
	}

	var (
		p    project.Project
		conv project.Conversation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = u.projects.FindByID(gctx, in.ProjectID)
		return err
	})
	g.Go(func() error {
		var err error
		conv, err = u.history.ListByProject(gctx, in.ProjectID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return Outcome{}, ErrProjectNotFound
		}
		return Outcome{}, fmt.Errorf("%w: load project: %w", ErrInternal, err)
	}

	return u.turn(ctx, p, conv.Dialogue(), message)
}

// turn persists the client message, consults the evaluator once and acts on
// its verdict. prior holds the dialogue before message.
func (u *Matching) turn(ctx context.Context, p project.Project, prior project.Conversation, message string) (Outcome, error) {
	conv := prior
	if message != "" {
		if _, err := u.history.Append(ctx, p.ID, project.RoleUser, message); err != nil {
			return Outcome{}, fmt.Errorf("%w: store message: %w", ErrInternal, err)
		}
		conv = conv.Append(project.RoleUser, message)
	}

	res, err := u.evaluator.Evaluate(ctx, p, prior, message)
	if err != nil {
		return Outcome{}, err
	}

	switch r := res.(type) {
	case evaluator.Sufficient:
		return u.match(ctx, p, conv, r.Requirements)
	case evaluator.Question:
		return u.ask(ctx, p, conv, r.Text)
	default:
		return u.ask(ctx, p, conv, evaluator.FallbackQuestion)
	}
}

func (u *Matching) ask(ctx context.Context, p project.Project, conv project.Conversation, question string) (Outcome, error) {
	if _, err := u.history.Append(ctx, p.ID, project.RoleAssistant, question); err != nil {
		return Outcome{}, fmt.Errorf("%w: store question: %w", ErrInternal, err)
	}
	u.logger.Info("gathering: follow-up question", zap.String("project_id", p.ID.String()), zap.Int("turns", len(conv)+1))
	return Outcome{
		Kind:      OutcomeQuestion,
		ProjectID: p.ID,
		Question:  question,
		History:   conv.Append(project.RoleAssistant, question),
	}, nil
}

func (u *Matching) match(ctx context.Context, p project.Project, conv project.Conversation, reqs matching.Requirements) (Outcome, error) {
	profiles, err := u.pool.Matchable(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: load developer pool: %w", ErrInternal, err)
	}

	results := matching.Score(reqs, Candidates(profiles), u.policy)

	suggestions := make([]match.Suggestion, 0, len(results))
	for _, r := range results {
		suggestions = append(suggestions, match.Suggestion{
			ProjectID:   p.ID,
			DeveloperID: r.DeveloperID,
			MatchScore:  r.MatchScore,
			Reason:      r.Reason,
			Status:      match.StatusSuggested,
		})
	}
	if err := u.matches.SaveRun(ctx, p.ID, suggestions); err != nil {
		return Outcome{}, fmt.Errorf("%w: store matches: %w", ErrInternal, err)
	}

	u.logger.Info("matching: run complete",
		zap.String("project_id", p.ID.String()),
		zap.Int("pool", len(profiles)),
		zap.Int("matches", len(results)),
	)
	if u.notifier != nil {
		u.notifier.NotifyMatchesReady(p.ID, len(results))
	}

	return Outcome{
		Kind:         OutcomeMatches,
		ProjectID:    p.ID,
		History:      conv,
		Matches:      results,
		Requirements: reqs,
	}, nil
}

// Candidates converts stored developer profiles into scorer input.
func Candidates(profiles []developer.Profile) []matching.Developer {
	out := make([]matching.Developer, 0, len(profiles))
	for _, p := range profiles {
		skills := make([]matching.DeveloperSkill, 0, len(p.Skills))
		for _, s := range p.Skills {
			skills = append(skills, matching.DeveloperSkill{
				Name:            s.Name,
				Level:           s.Level,
				YearsExperience: s.YearsExperience,
			})
		}
		out = append(out, matching.Developer{
			ID:            p.ID,
			Name:          p.Name,
			Email:         p.Email,
			AvailableFrom: p.AvailableFrom,
			Skills:        skills,
		})
	}
	return out
}

func (u *Matching) ListMatches(ctx context.Context, projectID uuid.UUID) ([]repository.StoredMatch, error) {
	if _, err := u.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: load project: %w", ErrInternal, err)
	}
	out, err := u.matches.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %w", ErrInternal, err)
	}
	return out, nil
}

// History returns the stored dialogue of a project without system turns.
func (u *Matching) History(ctx context.Context, projectID uuid.UUID) (project.Conversation, error) {
	if _, err := u.projects.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("%w: load project: %w", ErrInternal, err)
	}
	conv, err := u.history.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: list history: %w", ErrInternal, err)
	}
	return conv.Dialogue(), nil
}
