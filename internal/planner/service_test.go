package planner_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/planner"
	"github.com/saulo-duarte/organon/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	titles   []string
	err      error
	prompt   string
	onPrompt func()
}

func (f *fakeProvider) SendPrompt(_ context.Context, _, user string) ([]planner.Suggestion, error) {
	f.prompt = user
	if f.onPrompt != nil {
		f.onPrompt()
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]planner.Suggestion, 0, len(f.titles))
	for _, t := range f.titles {
		out = append(out, planner.Suggestion{Title: t})
	}
	return out, nil
}

type setup struct {
	ctx      context.Context
	projects project.ProjectService
	id       string
	path     project.NodePath
}

func newSetup(t *testing.T) setup {
	t.Helper()
	db, err := config.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&project.ProjectRecord{}))

	projects := project.NewService(project.NewRepository(db), feed.NewMemoryBroker(), project.NewHistory(time.UTC), time.Minute)
	ctx := auth.ContextWithClaims(context.Background(), &auth.Claims{
		UserID:           uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{ID: "s1"},
	})

	p, err := projects.CreateProject(ctx, project.CreateProjectDTO{Name: "Marathon"})
	require.NoError(t, err)
	id := p.ID.String()
	_, objID, err := projects.AddNode(ctx, id, project.AddNodeDTO{Kind: project.KindObjective, Title: "Get fit"})
	require.NoError(t, err)
	path := project.NodePath{ObjectiveID: objID}
	_, goalID, err := projects.AddNode(ctx, id, project.AddNodeDTO{Kind: project.KindGoal, Path: path, Title: "Run 42km"})
	require.NoError(t, err)
	path.GoalID = goalID
	_, _, err = projects.AddNode(ctx, id, project.AddNodeDTO{Kind: project.KindCheckpoint, Path: path, Title: "Buy shoes"})
	require.NoError(t, err)

	return setup{ctx: ctx, projects: projects, id: id, path: path}
}

func TestSuggestWithoutApply(t *testing.T) {
	s := newSetup(t)
	provider := &fakeProvider{titles: []string{"Run 5km", "Run 10km", "Run 21km", "Run 30km"}}
	svc := planner.NewService(provider, s.projects)

	resp, err := svc.Suggest(s.ctx, s.id, planner.SuggestionRequest{ObjectiveID: s.path.ObjectiveID, GoalID: s.path.GoalID, Count: 2})
	require.NoError(t, err)

	assert.Len(t, resp.Suggestions, 2)
	assert.False(t, resp.Applied)
	assert.Contains(t, provider.prompt, `Goal: "Run 42km"`)
	assert.Contains(t, provider.prompt, "- Buy shoes")
	assert.True(t, strings.HasSuffix(provider.prompt, "Suggest 2 new checkpoints for this goal."))

	p, err := s.projects.GetProjectByID(s.ctx, s.id)
	require.NoError(t, err)
	assert.Len(t, p.Objectives[0].Goals[0].Checkpoints, 1)
}

func TestSuggestApply(t *testing.T) {
	s := newSetup(t)
	svc := planner.NewService(&fakeProvider{titles: []string{"Run 5km", "Run 10km"}}, s.projects)

	resp, err := svc.Suggest(s.ctx, s.id, planner.SuggestionRequest{ObjectiveID: s.path.ObjectiveID, GoalID: s.path.GoalID, Apply: true})
	require.NoError(t, err)
	require.True(t, resp.Applied)

	checkpoints := resp.Project.Objectives[0].Goals[0].Checkpoints
	require.Len(t, checkpoints, 3)
	assert.Equal(t, "Run 5km", checkpoints[1].Title)
	assert.Equal(t, "Run 10km", checkpoints[2].Title)
	assert.False(t, checkpoints[2].Done)
}

func TestSuggestApplyAfterGoalDeleted(t *testing.T) {
	s := newSetup(t)
	provider := &fakeProvider{titles: []string{"Run 5km", "Run 10km"}}
	provider.onPrompt = func() {
		pending, err := s.projects.RequestDeletion(s.ctx, s.id, project.DeleteNodeDTO{Kind: project.KindGoal, Path: s.path})
		require.NoError(t, err)
		_, err = s.projects.ConfirmDeletion(s.ctx, pending.Token)
		require.NoError(t, err)
	}
	svc := planner.NewService(provider, s.projects)

	resp, err := svc.Suggest(s.ctx, s.id, planner.SuggestionRequest{ObjectiveID: s.path.ObjectiveID, GoalID: s.path.GoalID, Apply: true})
	require.NoError(t, err)

	assert.False(t, resp.Applied)
	require.NotNil(t, resp.Project)
	assert.Empty(t, resp.Project.Objectives[0].Goals)
}

func TestSuggestErrors(t *testing.T) {
	s := newSetup(t)

	t.Run("no provider", func(t *testing.T) {
		_, err := planner.NewService(nil, s.projects).Suggest(s.ctx, s.id, planner.SuggestionRequest{})
		assert.ErrorIs(t, err, planner.ErrNoProvider)
	})

	t.Run("unknown goal", func(t *testing.T) {
		svc := planner.NewService(&fakeProvider{}, s.projects)
		_, err := svc.Suggest(s.ctx, s.id, planner.SuggestionRequest{ObjectiveID: s.path.ObjectiveID, GoalID: "goal-x"})
		assert.ErrorIs(t, err, planner.ErrGoalNotFound)
	})

	t.Run("provider failure", func(t *testing.T) {
		boom := errors.New("quota exceeded")
		svc := planner.NewService(&fakeProvider{err: boom}, s.projects)
		_, err := svc.Suggest(s.ctx, s.id, planner.SuggestionRequest{ObjectiveID: s.path.ObjectiveID, GoalID: s.path.GoalID})
		assert.ErrorIs(t, err, boom)
	})
}
