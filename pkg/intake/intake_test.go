package intake

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/intake/mocks"
	"github.com/umputun/feedboard/pkg/repository"
	"github.com/umputun/feedboard/pkg/workflow"
)

func newStoreMock() *mocks.StoreMock {
	n := 0
	return &mocks.StoreMock{
		InsertFunc: func(ctx context.Context, item *domain.FeedbackItem) error {
			n++
			item.ID = fmt.Sprintf("id-%d", n)
			return nil
		},
		GetFeedbackFunc: func(ctx context.Context, id string) (*domain.FeedbackItem, error) {
			return nil, repository.ErrNotFound
		},
		SetAnalysisStateFunc: func(ctx context.Context, id string, state domain.AnalysisState) error {
			return nil
		},
	}
}

func dispatcherReturning(err error) *mocks.DispatcherMock {
	return &mocks.DispatcherMock{EnqueueFunc: func(ctx context.Context, params domain.WorkflowParams) error {
		return err
	}}
}

func TestService_Submit(t *testing.T) {
	store := newStoreMock()
	dispatcher := dispatcherReturning(nil)
	svc := NewService(store, dispatcher)

	res, err := svc.Submit(context.Background(), Submission{Source: "discord", Title: " Slow ", Content: " Dashboard is slow "})
	require.NoError(t, err)
	assert.Equal(t, SubmitResult{ID: "id-1", Status: ResultProcessing}, res)

	require.Len(t, store.InsertCalls(), 1)
	item := store.InsertCalls()[0].Item
	assert.Equal(t, "discord", item.Source)
	assert.Equal(t, "Slow", item.Title)
	assert.Equal(t, "Dashboard is slow", item.Content)

	require.Len(t, dispatcher.EnqueueCalls(), 1)
	assert.Equal(t, domain.WorkflowParams{ID: "id-1", Source: "discord", Title: "Slow", Content: "Dashboard is slow"},
		dispatcher.EnqueueCalls()[0].Params)

	require.Len(t, store.SetAnalysisStateCalls(), 1)
	assert.Equal(t, domain.AnalysisQueued, store.SetAnalysisStateCalls()[0].State)
}

func TestService_SubmitKeepsContentVerbatim(t *testing.T) {
	tests := []struct {
		name, title, content string
	}{
		{name: "generics", title: "SDK <T> bug", content: "SDK breaks on List<String> and Map<K,V> params"},
		{name: "markup only", content: "<img src=x>"},
		{name: "entities", content: `I can't click "save" &amp; exit`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStoreMock()
			dispatcher := dispatcherReturning(nil)
			svc := NewService(store, dispatcher)

			_, err := svc.Submit(context.Background(), Submission{Title: tt.title, Content: " " + tt.content + "\n"})
			require.NoError(t, err)

			item := store.InsertCalls()[0].Item
			assert.Equal(t, DefaultSource, item.Source)
			assert.Equal(t, tt.title, item.Title)
			assert.Equal(t, tt.content, item.Content)
			assert.Equal(t, tt.content, dispatcher.EnqueueCalls()[0].Params.Content)
		})
	}
}

func TestService_SubmitDispatchFailed(t *testing.T) {
	store := newStoreMock()
	svc := NewService(store, dispatcherReturning(workflow.ErrQueueFull))

	res, err := svc.Submit(context.Background(), Submission{Content: "App crashes on login"})
	require.NoError(t, err)
	assert.Equal(t, SubmitResult{ID: "id-1", Status: ResultNoAnalysis}, res)

	calls := store.SetAnalysisStateCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.AnalysisQueued, calls[0].State)
	assert.Equal(t, domain.AnalysisDispatchFailed, calls[1].State)
	assert.Equal(t, "id-1", calls[1].ID)
}

func TestService_SubmitInsertError(t *testing.T) {
	store := newStoreMock()
	store.InsertFunc = func(ctx context.Context, item *domain.FeedbackItem) error { return errors.New("disk full") }
	dispatcher := dispatcherReturning(nil)
	svc := NewService(store, dispatcher)

	_, err := svc.Submit(context.Background(), Submission{Content: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, dispatcher.EnqueueCalls())
}

func TestService_Seed(t *testing.T) {
	store := newStoreMock()
	calls := 0
	dispatcher := &mocks.DispatcherMock{EnqueueFunc: func(ctx context.Context, params domain.WorkflowParams) error {
		calls++
		if calls == 3 {
			return errors.New("engine stopped")
		}
		return nil
	}}
	svc := NewService(store, dispatcher)

	results, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("id-%d", i+1), res.ID)
		if i == 2 {
			assert.Equal(t, ResultNoAnalysis, res.Status)
			continue
		}
		assert.Equal(t, ResultProcessing, res.Status)
	}

	inserted := store.InsertCalls()
	require.Len(t, inserted, 6)
	assert.Equal(t, "twitter", inserted[2].Item.Source)
	assert.Empty(t, inserted[2].Item.Title)
	assert.Equal(t, "Urgent: API returning 500 errors", inserted[3].Item.Title)
	assert.Contains(t, inserted[4].Item.Content, "don't have accounts")
	assert.Contains(t, inserted[5].Item.Content, `"project-alpha"`)
}

func TestService_Reanalyze(t *testing.T) {
	t.Run("dispatch failed item", func(t *testing.T) {
		store := newStoreMock()
		store.GetFeedbackFunc = func(ctx context.Context, id string) (*domain.FeedbackItem, error) {
			return &domain.FeedbackItem{ID: id, Source: "email", Content: "text", AnalysisState: domain.AnalysisDispatchFailed}, nil
		}
		dispatcher := dispatcherReturning(nil)
		svc := NewService(store, dispatcher)

		require.NoError(t, svc.Reanalyze(context.Background(), "fb-1"))
		require.Len(t, dispatcher.EnqueueCalls(), 1)
		assert.Equal(t, "fb-1", dispatcher.EnqueueCalls()[0].Params.ID)
		assert.Equal(t, domain.AnalysisQueued, store.SetAnalysisStateCalls()[0].State)
	})

	t.Run("already processed", func(t *testing.T) {
		store := newStoreMock()
		now := time.Now()
		store.GetFeedbackFunc = func(ctx context.Context, id string) (*domain.FeedbackItem, error) {
			return &domain.FeedbackItem{ID: id, Content: "text", ProcessedAt: &now}, nil
		}
		dispatcher := dispatcherReturning(nil)
		svc := NewService(store, dispatcher)

		require.ErrorIs(t, svc.Reanalyze(context.Background(), "fb-1"), ErrAlreadyAnalyzed)
		assert.Empty(t, dispatcher.EnqueueCalls())
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(newStoreMock(), dispatcherReturning(nil))
		require.ErrorIs(t, svc.Reanalyze(context.Background(), "missing"), repository.ErrNotFound)
	})

	t.Run("already queued keeps state", func(t *testing.T) {
		store := newStoreMock()
		store.GetFeedbackFunc = func(ctx context.Context, id string) (*domain.FeedbackItem, error) {
			return &domain.FeedbackItem{ID: id, Content: "text", AnalysisState: domain.AnalysisQueued}, nil
		}
		svc := NewService(store, dispatcherReturning(fmt.Errorf("feedback fb-1: %w", workflow.ErrAlreadyQueued)))

		require.ErrorIs(t, svc.Reanalyze(context.Background(), "fb-1"), workflow.ErrAlreadyQueued)
		for _, c := range store.SetAnalysisStateCalls() {
			assert.NotEqual(t, domain.AnalysisDispatchFailed, c.State)
		}
	})

	t.Run("already queued restores previous state", func(t *testing.T) {
		store := newStoreMock()
		store.GetFeedbackFunc = func(ctx context.Context, id string) (*domain.FeedbackItem, error) {
			return &domain.FeedbackItem{ID: id, Content: "text", AnalysisState: domain.AnalysisFailed}, nil
		}
		svc := NewService(store, dispatcherReturning(fmt.Errorf("feedback fb-1: %w", workflow.ErrAlreadyQueued)))

		require.ErrorIs(t, svc.Reanalyze(context.Background(), "fb-1"), workflow.ErrAlreadyQueued)
		calls := store.SetAnalysisStateCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, domain.AnalysisQueued, calls[0].State)
		assert.Equal(t, domain.AnalysisFailed, calls[1].State)
	})
}

func TestService_SubmitWithRepository(t *testing.T) {
	repos, err := repository.NewRepositories(context.Background(), repository.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	svc := NewService(repos.Feedback, dispatcherReturning(workflow.ErrNotStarted))
	res, err := svc.Submit(context.Background(), Submission{Source: "github", Content: "SDK breaks on List<String> and Map<K,V> params"})
	require.NoError(t, err)
	assert.Equal(t, ResultNoAnalysis, res.Status)

	item, err := repos.Feedback.GetFeedback(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, "SDK breaks on List<String> and Map<K,V> params", item.Content)
	assert.Equal(t, domain.AnalysisDispatchFailed, item.AnalysisState)
	assert.Equal(t, domain.StatusInbox, item.Status)
	assert.Nil(t, item.ProcessedAt)
}
