package usecase

import (
	"context"
	"errors"
	"testing"

	"dev-match/internal/domain/developer"
	"dev-match/internal/domain/match"
	"dev-match/internal/domain/matching"
	"dev-match/internal/domain/project"
	"dev-match/internal/domain/schedule"
	"dev-match/internal/domain/skill"
	"dev-match/internal/repository"
	"dev-match/internal/usecase/evaluator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	projects *memProjects
	history  *memHistory
	matches  *memMatches
	eval     *scriptedEvaluator
	notifier *recordingNotifier
	uc       *Matching
}

func newHarness(pool DeveloperPool, results ...evaluator.Result) *harness {
	h := &harness{
		projects: newMemProjects(),
		history:  newMemHistory(),
		eval:     &scriptedEvaluator{results: results},
		notifier: &recordingNotifier{},
	}
	h.matches = &memMatches{projects: h.projects}
	h.uc = NewMatchingUsecase(MatchingDeps{
		Projects:  h.projects,
		History:   h.history,
		Matches:   h.matches,
		Pool:      pool,
		Evaluator: h.eval,
		Notifier:  h.notifier,
		Policy:    matching.DefaultPolicy,
	})
	return h
}

func pythonPool() staticPool {
	return staticPool{profiles: []developer.Profile{
		{
			ID: uuid.New(), Name: "ana", Email: "ana@example.com", IsPublic: true, Status: developer.StatusActive,
			AvailableFrom: schedule.Immediately(),
			Skills:        []developer.Skill{{Name: "Python", Level: skill.LevelExpert, YearsExperience: 6}},
		},
		{
			ID: uuid.New(), Name: "ben", Email: "ben@example.com", IsPublic: true, Status: developer.StatusActive,
			AvailableFrom: schedule.Immediately(),
			Skills:        []developer.Skill{{Name: "Python", Level: skill.LevelBeginner}},
		},
	}}
}

func pythonRequirements() matching.Requirements {
	return matching.Requirements{
		Skills:    []matching.Requirement{{Name: "Python", Level: skill.LevelIntermediate, Required: true}},
		StartDate: schedule.Immediately(),
	}
}

func TestStartProject_QuestionIsLogged(t *testing.T) {
	h := newHarness(pythonPool(), evaluator.Question{Text: "What is the budget?"})

	out, err := h.uc.StartProject(context.Background(), StartInput{Project: pythonProject()})

	require.NoError(t, err)
	assert.Equal(t, OutcomeQuestion, out.Kind)
	assert.Equal(t, "What is the budget?", out.Question)
	require.Len(t, out.History, 1)
	assert.Equal(t, project.RoleAssistant, out.History[0].Role)

	stored, _ := h.history.ListByProject(context.Background(), out.ProjectID)
	require.Len(t, stored, 2)
	assert.Equal(t, project.RoleSystem, stored[0].Role)
	assert.Contains(t, stored[0].Text, "Project title: Analytics dashboard")
	assert.Equal(t, project.RoleAssistant, stored[1].Role)

	p, err := h.projects.FindByID(context.Background(), out.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, project.StatusDraft, p.Status)
	assert.Zero(t, h.notifier.calls)
}

func TestStartProject_SufficientScoresAndPersists(t *testing.T) {
	h := newHarness(pythonPool(), evaluator.Sufficient{Requirements: pythonRequirements()})

	out, err := h.uc.StartProject(context.Background(), StartInput{
		Project: pythonProject(),
		Message: "Budget is fixed.",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeMatches, out.Kind)
	require.Len(t, out.Matches, 1)
	assert.Equal(t, "ana", out.Matches[0].DeveloperName)
	assert.Equal(t, 40, out.Matches[0].MatchScore)
	assert.Equal(t, pythonRequirements(), out.Requirements)

	runs := h.matches.runs[out.ProjectID]
	require.Len(t, runs, 1)
	assert.Equal(t, match.StatusSuggested, runs[0].Status)
	assert.Equal(t, 40, runs[0].MatchScore)

	p, _ := h.projects.FindByID(context.Background(), out.ProjectID)
	assert.Equal(t, project.StatusMatched, p.Status)
	assert.Equal(t, 1, h.notifier.calls)
	assert.Equal(t, 1, h.notifier.count)

	stored, _ := h.history.ListByProject(context.Background(), out.ProjectID)
	require.Len(t, stored, 2)
	assert.Equal(t, project.RoleUser, stored[1].Role)
	assert.Equal(t, "Budget is fixed.", stored[1].Text)
}

func TestStartProject_CarriesPayloadHistory(t *testing.T) {
	h := newHarness(pythonPool(), evaluator.Question{Text: "Remote ok?"})
	var prior project.Conversation
	prior = prior.Append(project.RoleUser, "hi")
	prior = prior.Append(project.RoleAssistant, "What is the budget?")

	out, err := h.uc.StartProject(context.Background(), StartInput{
		Project:     pythonProject(),
		Message:     "5M yen",
		ChatHistory: prior,
	})

	require.NoError(t, err)
	require.Len(t, h.eval.calls, 1)
	assert.Len(t, h.eval.calls[0].history, 2)
	assert.Equal(t, "5M yen", h.eval.calls[0].latest)
	assert.Len(t, out.History, 4)

	stored, _ := h.history.ListByProject(context.Background(), out.ProjectID)
	assert.Len(t, stored, 5)
}

func TestStartProject_EmptyPoolIsNotAnError(t *testing.T) {
	h := newHarness(staticPool{}, evaluator.Sufficient{Requirements: pythonRequirements()})

	out, err := h.uc.StartProject(context.Background(), StartInput{Project: pythonProject()})

	require.NoError(t, err)
	assert.Equal(t, OutcomeMatches, out.Kind)
	assert.NotNil(t, out.Matches)
	assert.Empty(t, out.Matches)
}

func TestStartProject_ValidationHappensBeforeOracle(t *testing.T) {
	h := newHarness(pythonPool())
	p := pythonProject()
	p.Title = " "
	p.Types = nil
	p.PreferredSkills = []project.SkillRequirement{{Name: "python", MinLevel: skill.LevelExpert}}
	p.StartDate = "2025-06-01"
	p.EndDate = "2025-05-01"

	_, err := h.uc.StartProject(context.Background(), StartInput{Project: p})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")
	assert.Contains(t, ve.Fields, "project_type")
	assert.Contains(t, ve.Fields, "skills.python")
	assert.Contains(t, ve.Fields, "end_date")
	assert.Empty(t, h.eval.calls)
	assert.Empty(t, h.projects.items)
}

func TestStartProject_OracleFailureIsSurfaced(t *testing.T) {
	h := newHarness(pythonPool())
	h.eval.err = evaluator.ErrOracleUnavailable

	_, err := h.uc.StartProject(context.Background(), StartInput{Project: pythonProject(), Message: "hello"})

	assert.ErrorIs(t, err, evaluator.ErrOracleUnavailable)
	require.Len(t, h.projects.items, 1)
	for id := range h.projects.items {
		stored, _ := h.history.ListByProject(context.Background(), id)
		require.Len(t, stored, 2)
		assert.Equal(t, project.RoleUser, stored[1].Role)
	}
}

func TestStartProject_StoreFailure(t *testing.T) {
	h := newHarness(pythonPool())
	h.projects.failErr = errors.New("db down")

	_, err := h.uc.StartProject(context.Background(), StartInput{Project: pythonProject()})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, h.eval.calls)
}

func TestContinueProject_GatheringThenMatching(t *testing.T) {
	h := newHarness(pythonPool(),
		evaluator.Question{Text: "What is the budget?"},
		evaluator.Question{Text: "Remote ok?"},
		evaluator.Sufficient{Requirements: pythonRequirements()},
	)
	ctx := context.Background()

	first, err := h.uc.StartProject(ctx, StartInput{Project: pythonProject()})
	require.NoError(t, err)

	second, err := h.uc.ContinueProject(ctx, ContinueInput{ProjectID: first.ProjectID, Message: "About 5M"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuestion, second.Kind)
	assert.Equal(t, "Remote ok?", second.Question)
	require.Len(t, second.History, 3)
	assert.Equal(t, "About 5M", second.History[1].Text)

	third, err := h.uc.ContinueProject(ctx, ContinueInput{ProjectID: first.ProjectID, Message: "Yes"})
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatches, third.Kind)
	require.Len(t, third.Matches, 1)

	last := h.eval.calls[2]
	assert.Equal(t, "Yes", last.latest)
	require.Len(t, last.history, 3)
	for _, turn := range last.history {
		assert.NotEqual(t, project.RoleSystem, turn.Role)
	}

	hist, err := h.uc.History(ctx, first.ProjectID)
	require.NoError(t, err)
	assert.Len(t, hist, 4)

	stored, err := h.uc.ListMatches(ctx, first.ProjectID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestContinueProject_UnknownProject(t *testing.T) {
	h := newHarness(pythonPool())

	_, err := h.uc.ContinueProject(context.Background(), ContinueInput{ProjectID: uuid.New(), Message: "hi"})

	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.Empty(t, h.eval.calls)
}

func TestContinueProject_RequiresMessage(t *testing.T) {
	h := newHarness(pythonPool())

	_, err := h.uc.ContinueProject(context.Background(), ContinueInput{ProjectID: uuid.New(), Message: "  "})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestContinueProject_PoolFailure(t *testing.T) {
	h := newHarness(staticPool{err: errors.New("timeout")}, evaluator.Sufficient{Requirements: pythonRequirements()})

	_, err := h.uc.StartProject(context.Background(), StartInput{Project: pythonProject()})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, h.notifier.calls)
}

func TestListMatches_UnknownProject(t *testing.T) {
	h := newHarness(pythonPool())

	_, err := h.uc.ListMatches(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = h.uc.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

var _ repository.ProjectRepository = (*memProjects)(nil)
