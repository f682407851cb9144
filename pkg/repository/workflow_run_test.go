package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedboard/pkg/domain"
)

func TestRunRepository_CreateAndGet(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	params := domain.WorkflowParams{ID: "fb-1", Source: "github", SourceID: "42", Title: "t", Content: "broken"}
	run, err := repos.Run.CreateRun(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, "workflow-fb-1", run.ID)
	assert.Equal(t, domain.RunPending, run.State)

	got, err := repos.Run.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, params, got.Params)
	assert.Equal(t, domain.RunPending, got.State)
	assert.Nil(t, got.Analysis)
	assert.Zero(t, got.Attempts)
	assert.Empty(t, got.LastError)

	_, err = repos.Run.GetRun(ctx, "workflow-missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRunRepository_CreateRunActive(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	params := domain.WorkflowParams{ID: "fb-1", Source: "manual", Content: "text"}
	run, err := repos.Run.CreateRun(ctx, params)
	require.NoError(t, err)

	_, err = repos.Run.CreateRun(ctx, params)
	require.ErrorIs(t, err, ErrRunActive)

	run.State = domain.RunAnalyzing
	require.NoError(t, repos.Run.UpdateRun(ctx, run))
	_, err = repos.Run.CreateRun(ctx, params)
	require.ErrorIs(t, err, ErrRunActive)
}

func TestRunRepository_CreateRunResetsTerminal(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	params := domain.WorkflowParams{ID: "fb-1", Source: "manual", Content: "text"}
	run, err := repos.Run.CreateRun(ctx, params)
	require.NoError(t, err)

	run.State = domain.RunFailed
	run.Attempts = 5
	run.LastError = "llm unavailable"
	run.Analysis = &domain.AnalysisResult{Sentiment: domain.SentimentNeutral, Urgency: domain.UrgencyLow, Themes: []string{}, Summary: "s"}
	require.NoError(t, repos.Run.UpdateRun(ctx, run))

	params.Content = "updated text"
	reset, err := repos.Run.CreateRun(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, domain.RunPending, reset.State)

	got, err := repos.Run.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunPending, got.State)
	assert.Zero(t, got.Attempts)
	assert.Empty(t, got.LastError)
	assert.Nil(t, got.Analysis)
	assert.Equal(t, "updated text", got.Params.Content)
}

func TestRunRepository_UpdateRun(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	run, err := repos.Run.CreateRun(ctx, domain.WorkflowParams{ID: "fb-1", Source: "manual", Content: "text"})
	require.NoError(t, err)

	run.State = domain.RunStoring
	run.Attempts = 2
	run.Analysis = &domain.AnalysisResult{
		Sentiment: domain.SentimentNegative, SentimentScore: 0.8, Urgency: domain.UrgencyHigh,
		Themes: []string{"Bug"}, Summary: "App crashes on login.",
	}
	require.NoError(t, repos.Run.UpdateRun(ctx, run))

	got, err := repos.Run.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RunStoring, got.State)
	assert.Equal(t, 2, got.Attempts)
	require.NotNil(t, got.Analysis)
	assert.Equal(t, *run.Analysis, *got.Analysis)

	missing := &domain.WorkflowRun{ID: "workflow-missing", State: domain.RunFailed}
	require.ErrorIs(t, repos.Run.UpdateRun(ctx, missing), ErrNotFound)
}

func TestRunRepository_ListActiveRuns(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	states := map[string]domain.RunState{
		"a": domain.RunPending,
		"b": domain.RunAnalyzing,
		"c": domain.RunStoring,
		"d": domain.RunCompleted,
		"e": domain.RunFailed,
	}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		run, err := repos.Run.CreateRun(ctx, domain.WorkflowParams{ID: id, Source: "manual", Content: "text " + id})
		require.NoError(t, err)
		run.State = states[id]
		require.NoError(t, repos.Run.UpdateRun(ctx, run))
	}

	runs, err := repos.Run.ListActiveRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "workflow-a", runs[0].ID)
	assert.Equal(t, "workflow-b", runs[1].ID)
	assert.Equal(t, "workflow-c", runs[2].ID)
	assert.Equal(t, "text b", runs[1].Params.Content)
}
