package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"dev-match/internal/domain/developer"
	"dev-match/internal/domain/match"
	"dev-match/internal/domain/project"
	"dev-match/internal/domain/skill"
	"dev-match/internal/repository"
	"dev-match/internal/usecase/evaluator"

	"github.com/google/uuid"
)

type memProjects struct {
	mu      sync.Mutex
	items   map[uuid.UUID]project.Project
	failErr error
}

func newMemProjects() *memProjects {
	return &memProjects{items: map[uuid.UUID]project.Project{}}
}

func (m *memProjects) Create(_ context.Context, p project.Project) (project.Project, error) {
	if m.failErr != nil {
		return project.Project{}, m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	m.items[p.ID] = p
	return p, nil
}

func (m *memProjects) FindByID(_ context.Context, id uuid.UUID) (project.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return project.Project{}, repository.ErrProjectNotFound
	}
	return p, nil
}

func (m *memProjects) setStatus(id uuid.UUID, status project.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return repository.ErrProjectNotFound
	}
	p.Status = status
	m.items[id] = p
	return nil
}

type memHistory struct {
	mu    sync.Mutex
	turns map[uuid.UUID]project.Conversation
}

func newMemHistory() *memHistory {
	return &memHistory{turns: map[uuid.UUID]project.Conversation{}}
}

func (m *memHistory) Append(_ context.Context, projectID uuid.UUID, role project.Role, text string) (project.Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv := m.turns[projectID].Append(role, text)
	conv[len(conv)-1].ProjectID = projectID
	m.turns[projectID] = conv
	return conv[len(conv)-1], nil
}

func (m *memHistory) ListByProject(_ context.Context, projectID uuid.UUID) (project.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(project.Conversation(nil), m.turns[projectID]...), nil
}

type memMatches struct {
	mu       sync.Mutex
	runs     map[uuid.UUID][]match.Suggestion
	projects *memProjects
	failErr  error
}

func (m *memMatches) SaveRun(_ context.Context, projectID uuid.UUID, suggestions []match.Suggestion) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.mu.Lock()
	if m.runs == nil {
		m.runs = map[uuid.UUID][]match.Suggestion{}
	}
	m.runs[projectID] = suggestions
	m.mu.Unlock()
	if m.projects != nil {
		return m.projects.setStatus(projectID, project.StatusMatched)
	}
	return nil
}

func (m *memMatches) ListByProject(_ context.Context, projectID uuid.UUID) ([]repository.StoredMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.StoredMatch, 0, len(m.runs[projectID]))
	for _, s := range m.runs[projectID] {
		out = append(out, repository.StoredMatch{Suggestion: s})
	}
	return out, nil
}

type staticPool struct {
	profiles []developer.Profile
	err      error
}

func (s staticPool) Matchable(context.Context) ([]developer.Profile, error) { return s.profiles, s.err }
func (s staticPool) Invalidate(context.Context) error                    { return nil }

type scriptedEvaluator struct {
	results []evaluator.Result
	err     error
	calls   []evalCall
}

type evalCall struct {
	project project.Project
	history project.Conversation
	latest  string
}

func (s *scriptedEvaluator) Evaluate(_ context.Context, p project.Project, history project.Conversation, latest string) (evaluator.Result, error) {
	s.calls = append(s.calls, evalCall{project: p, history: history, latest: latest})
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) == 0 {
		return nil, errors.New("unexpected evaluate call")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r, nil
}

type recordingNotifier struct {
	projectID uuid.UUID
	count     int
	calls     int
}

func (r *recordingNotifier) NotifyMatchesReady(projectID uuid.UUID, count int) {
	r.projectID = projectID
	r.count = count
	r.calls++
}

func pythonProject() project.Project {
	return project.Project{
		Title: "Analytics dashboard",
		Types: []string{"web_app"},
		RequiredSkills: []project.SkillRequirement{
			{Name: "Python", MinLevel: skill.LevelIntermediate},
		},
		StartDate: "now",
		EndDate:   "2025-12-31",
	}
}
