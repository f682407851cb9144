package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/intake"
	intakemocks "github.com/umputun/feedboard/pkg/intake/mocks"
	"github.com/umputun/feedboard/pkg/llm"
	llmmocks "github.com/umputun/feedboard/pkg/llm/mocks"
	"github.com/umputun/feedboard/pkg/workflow"
)

const modelResponse = "Sure! Here's the analysis:\n```json\n" +
	`{"sentiment":"negative","sentiment_score":0.92,"urgency":"critical","themes":["Bug","Mobile"],"summary":"Login crashes the app."}` +
	"\n```"

// pipeline wires the real store, intake and workflow engine behind the server
type pipeline struct {
	srv    *Server
	engine *workflow.Engine
	cookie *http.Cookie
}

func newPipeline(t *testing.T, failEnqueue func(n int32) bool) *pipeline {
	t.Helper()
	repos := setupRepos(t)

	completer := &llmmocks.CompleterMock{CompleteFunc: func(ctx context.Context, prompt string, maxTokens int) (string, error) {
		return modelResponse, nil
	}}
	engine := workflow.NewEngine(llm.NewAnalyzer(completer, 300), repos.Feedback, repos.Run, nil,
		workflow.Config{MaxWorkers: 3, QueueSize: 10, MaxAttempts: 2, RetryDelay: time.Millisecond, MaxRetryDelay: time.Millisecond})
	require.NoError(t, engine.Start(context.Background()))
	t.Cleanup(engine.Stop)

	var count atomic.Int32
	dispatcher := &intakemocks.DispatcherMock{EnqueueFunc: func(ctx context.Context, params domain.WorkflowParams) error {
		if failEnqueue != nil && failEnqueue(count.Add(1)) {
			return errors.New("workflow service unavailable")
		}
		return engine.Enqueue(ctx, params)
	}}

	srv := testServer(t, nil, NewRepositoryAdapter(repos), intake.NewService(repos.Feedback, dispatcher), engine)
	return &pipeline{srv: srv, engine: engine, cookie: login(t, srv)}
}

func (p *pipeline) list(t *testing.T, query string) []domain.FeedbackItem {
	t.Helper()
	rec := do(p.srv, http.MethodGet, "/api/feedback"+query, "", p.cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Feedback []domain.FeedbackItem `json:"feedback"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Feedback
}

func (p *pipeline) get(t *testing.T, id string) domain.FeedbackItem {
	t.Helper()
	rec := do(p.srv, http.MethodGet, "/api/feedback/"+id, "", p.cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var item domain.FeedbackItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	return item
}

func (p *pipeline) waitProcessed(t *testing.T, id string) domain.FeedbackItem {
	t.Helper()
	require.Eventually(t, func() bool {
		return p.get(t, id).ProcessedAt != nil
	}, 5*time.Second, 10*time.Millisecond)
	return p.get(t, id)
}

func TestPipeline_SubmitAndAnalyze(t *testing.T) {
	p := newPipeline(t, nil)

	rec := do(p.srv, http.MethodPost, "/api/feedback", `{"content":"App crashes on login"}`, p.cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotEmpty(t, created.ID)

	item := p.waitProcessed(t, created.ID)
	assert.Equal(t, "manual", item.Source)
	assert.Equal(t, domain.StatusInbox, item.Status)
	assert.Equal(t, domain.SentimentNegative, item.Sentiment)
	assert.Equal(t, domain.UrgencyCritical, item.Urgency)
	assert.Equal(t, []string{"Bug", "Mobile"}, item.Themes)
	assert.Equal(t, "Login crashes the app.", item.Summary)
	assert.Equal(t, domain.AnalysisDone, item.AnalysisState)

	require.Eventually(t, func() bool {
		rec := do(p.srv, http.MethodGet, "/api/feedback/"+created.ID+"/workflow", "", p.cookie)
		return rec.Code == http.StatusOK && strings.Contains(rec.Body.String(), `"state":"completed"`)
	}, 5*time.Second, 10*time.Millisecond)

	rec = do(p.srv, http.MethodPost, "/api/feedback/"+created.ID+"/analyze", "", p.cookie)
	assert.Equal(t, http.StatusConflict, rec.Code, "analyzed item is not dispatched again")
}

func TestPipeline_EmptyContentRejected(t *testing.T) {
	p := newPipeline(t, nil)

	for _, body := range []string{`{"content":""}`, `{"source":"email","title":"x"}`, `{"content":" \n\t "}`} {
		rec := do(p.srv, http.MethodPost, "/api/feedback", body, p.cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Content is required"}`, rec.Body.String())
	}
	assert.Empty(t, p.list(t, ""), "no record created")
}

func TestPipeline_StatusChangeKeepsAnalysis(t *testing.T) {
	p := newPipeline(t, nil)

	rec := do(p.srv, http.MethodPost, "/api/feedback", `{"source":"discord","title":"Dark mode","content":"Please add dark mode"}`, p.cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	before := p.waitProcessed(t, created.ID)

	rec = do(p.srv, http.MethodPatch, "/api/feedback/"+created.ID, `{"status":"planned"}`, p.cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	planned := p.list(t, "?status=planned")
	require.Len(t, planned, 1)
	after := planned[0]
	assert.Equal(t, domain.StatusPlanned, after.Status)
	assert.Equal(t, before.Sentiment, after.Sentiment)
	assert.Equal(t, before.Urgency, after.Urgency)
	assert.Equal(t, before.Themes, after.Themes)
	assert.Equal(t, before.Summary, after.Summary)
	assert.True(t, before.ProcessedAt.Equal(*after.ProcessedAt))
	assert.Empty(t, p.list(t, "?status=inbox"))

	rec = do(p.srv, http.MethodPatch, "/api/feedback/"+created.ID, `{"status":"shipped"}`, p.cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domain.StatusPlanned, p.get(t, created.ID).Status, "invalid status never stored")

	rec = do(p.srv, http.MethodDelete, "/api/feedback/"+created.ID, "", p.cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(p.srv, http.MethodGet, "/api/feedback/"+created.ID+"/workflow", "", p.cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code, "workflow run removed with the item")
}

func TestPipeline_SeedWithPartialDispatchFailure(t *testing.T) {
	p := newPipeline(t, func(n int32) bool { return n == 3 })

	rec := do(p.srv, http.MethodPost, "/api/seed", "", p.cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Results []intake.SubmitResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Equal(t, 6, resp.Count)
	require.Len(t, resp.Results, 6)

	var failedID string
	for i, r := range resp.Results {
		if i == 2 {
			assert.Equal(t, intake.ResultNoAnalysis, r.Status)
			failedID = r.ID
			continue
		}
		assert.Equal(t, intake.ResultProcessing, r.Status)
	}

	for i, r := range resp.Results {
		if i == 2 {
			continue
		}
		item := p.waitProcessed(t, r.ID)
		assert.Equal(t, domain.AnalysisDone, item.AnalysisState)
	}

	failed := p.get(t, failedID)
	assert.Nil(t, failed.ProcessedAt)
	assert.Equal(t, domain.AnalysisDispatchFailed, failed.AnalysisState)
	assert.Len(t, p.list(t, ""), 6)

	// operator retries the failed dispatch
	rec = do(p.srv, http.MethodPost, "/api/feedback/"+failedID+"/analyze", "", p.cookie)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.Equal(t, domain.AnalysisDone, p.waitProcessed(t, failedID).AnalysisState)
}

func TestPipeline_InitIsIdempotent(t *testing.T) {
	p := newPipeline(t, nil)
	rec := do(p.srv, http.MethodPost, "/api/feedback", `{"content":"keep me"}`, p.cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	for range 2 {
		rec = do(p.srv, http.MethodPost, "/api/init", "", p.cookie)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Len(t, p.list(t, ""), 1, "init keeps existing data")
}
