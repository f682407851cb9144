// Package workflow runs the durable two-step feedback analysis.
//
// Each feedback item gets one run record keyed by RunID. A run moves through
// pending, analyzing, storing and completed; a step that exhausts its retry budget
// moves the run to failed. The analysis is cached on the run record before the store
// step starts, so a run resumed after restart never calls the model twice.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/repository"
)

//go:generate moq -out mocks/analyzer.go -pkg mocks -skip-ensure -fmt goimports . Analyzer
//go:generate moq -out mocks/feedback_store.go -pkg mocks -skip-ensure -fmt goimports . FeedbackStore
//go:generate moq -out mocks/run_store.go -pkg mocks -skip-ensure -fmt goimports . RunStore
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// step names, used in logs and errors
const (
	stepAnalyze = "analyze-feedback"
	stepStore   = "store-feedback"
)

var (
	// ErrAlreadyQueued returned when the item has an active run
	ErrAlreadyQueued = errors.New("analysis already queued")
	// ErrNotStarted returned by Enqueue before Start or after Stop
	ErrNotStarted = errors.New("workflow engine is not running")
	// ErrQueueFull returned by Enqueue when no more runs can be buffered
	ErrQueueFull = errors.New("workflow queue is full")
)

// Analyzer produces analysis for feedback text
type Analyzer interface {
	Analyze(ctx context.Context, content, title string) (domain.AnalysisResult, error)
}

// FeedbackStore is the part of the record store the workflow writes to
type FeedbackStore interface {
	GetFeedback(ctx context.Context, id string) (*domain.FeedbackItem, error)
	UpdateAnalysis(ctx context.Context, id string, res domain.AnalysisResult) error
	SetAnalysisState(ctx context.Context, id string, state domain.AnalysisState) error
}

// RunStore keeps durable run records
type RunStore interface {
	CreateRun(ctx context.Context, params domain.WorkflowParams) (*domain.WorkflowRun, error)
	GetRun(ctx context.Context, id string) (*domain.WorkflowRun, error)
	UpdateRun(ctx context.Context, run *domain.WorkflowRun) error
	ListActiveRuns(ctx context.Context) ([]domain.WorkflowRun, error)
}

// Notifier is told about analyzed items at or above the configured urgency
type Notifier interface {
	Notify(ctx context.Context, item domain.FeedbackItem) error
}

// Config holds engine settings
type Config struct {
	MaxWorkers       int
	QueueSize        int
	MaxAttempts      int
	RetryDelay       time.Duration
	MaxRetryDelay    time.Duration
	NotifyMinUrgency domain.Urgency
}

// Engine executes workflow runs on a bounded worker pool
type Engine struct {
	analyzer Analyzer
	feedback FeedbackStore
	runs     RunStore
	notifier Notifier
	cfg      Config

	queue chan domain.WorkflowRun

	mu      sync.RWMutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewEngine makes a workflow engine. Notifier is optional.
func NewEngine(analyzer Analyzer, feedback FeedbackStore, runs RunStore, notifier Notifier, cfg Config) *Engine {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetryDelay <= 0 {
		cfg.MaxRetryDelay = 30 * time.Second
	}
	if !cfg.NotifyMinUrgency.Valid() {
		cfg.NotifyMinUrgency = domain.UrgencyCritical
	}
	return &Engine{
		analyzer: analyzer,
		feedback: feedback,
		runs:     runs,
		notifier: notifier,
		cfg:      cfg,
		queue:    make(chan domain.WorkflowRun, cfg.QueueSize),
	}
}

// Start launches the worker pool and re-queues every run left unfinished by a previous process
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return errors.New("workflow engine already started")
	}

	// leftovers of a previous start are picked up again from the store
	for len(e.queue) > 0 {
		<-e.queue
	}

	active, err := e.runs.ListActiveRuns(ctx)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("list active runs: %w", err)
	}

	ctx, e.cancel = context.WithCancel(ctx)
	e.running = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.dispatch(ctx)

	if len(active) > 0 {
		lgr.Printf("[INFO] resuming %d unfinished workflow runs", len(active))
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for _, run := range active {
				select {
				case e.queue <- run:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	lgr.Printf("[INFO] workflow engine started with %d workers", e.cfg.MaxWorkers)
	return nil
}

// Stop cancels running workflows and waits for workers to exit. Interrupted runs
// keep their state and resume on the next Start.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.cancel()
	e.mu.Unlock()

	e.wg.Wait()
	lgr.Printf("[INFO] workflow engine stopped")
}

// Enqueue persists a pending run for the item and hands it to the worker pool
func (e *Engine) Enqueue(ctx context.Context, params domain.WorkflowParams) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.running {
		return ErrNotStarted
	}

	run, err := e.createRun(ctx, params)
	if err != nil {
		return err
	}

	select {
	case e.queue <- *run:
		lgr.Printf("[DEBUG] workflow %s queued", run.ID)
		return nil
	default:
	}

	// run record must not block a later retry
	run.State, run.LastError = domain.RunFailed, ErrQueueFull.Error()
	if err := e.runs.UpdateRun(ctx, run); err != nil {
		lgr.Printf("[WARN] can't mark workflow %s failed: %v", run.ID, err)
	}
	return ErrQueueFull
}

// Run executes the workflow for the item synchronously
func (e *Engine) Run(ctx context.Context, params domain.WorkflowParams) (domain.WorkflowResult, error) {
	run, err := e.createRun(ctx, params)
	if err != nil {
		return domain.WorkflowResult{}, err
	}
	return e.execute(ctx, run)
}

// Status returns the run record of the feedback item
func (e *Engine) Status(ctx context.Context, feedbackID string) (*domain.WorkflowRun, error) {
	run, err := e.runs.GetRun(ctx, domain.RunID(feedbackID))
	if err != nil {
		return nil, fmt.Errorf("workflow status: %w", err)
	}
	return run, nil
}

func (e *Engine) createRun(ctx context.Context, params domain.WorkflowParams) (*domain.WorkflowRun, error) {
	if params.ID == "" {
		return nil, errors.New("workflow params without feedback id")
	}
	run, err := e.runs.CreateRun(ctx, params)
	if errors.Is(err, repository.ErrRunActive) {
		return nil, fmt.Errorf("feedback %s: %w", params.ID, ErrAlreadyQueued)
	}
	if err != nil {
		return nil, fmt.Errorf("create workflow run: %w", err)
	}
	return run, nil
}

// dispatch feeds queued runs to the worker pool until the context is canceled
func (e *Engine) dispatch(ctx context.Context) {
	defer e.wg.Done()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxWorkers)
	defer func() {
		if err := g.Wait(); err != nil {
			lgr.Printf("[ERROR] workflow worker error: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case run := <-e.queue:
			g.Go(func() error {
				if _, err := e.execute(gctx, &run); err != nil {
					lgr.Printf("[WARN] workflow %s: %v", run.ID, err)
				}
				return nil
			})
		}
	}
}

// execute runs the remaining steps of the run. A canceled context leaves the run in
// its current state, any other step failure marks it failed.
func (e *Engine) execute(ctx context.Context, run *domain.WorkflowRun) (domain.WorkflowResult, error) {
	params := run.Params
	lgr.Printf("[DEBUG] workflow %s started in state %s", run.ID, run.State)

	if run.Analysis == nil {
		run.State = domain.RunAnalyzing
		e.saveRun(ctx, run)

		var res domain.AnalysisResult
		err := e.step(ctx, run, stepAnalyze, func() (err error) {
			res, err = e.analyzer.Analyze(ctx, params.Content, params.Title)
			return err
		})
		if err != nil {
			return domain.WorkflowResult{}, e.fail(ctx, run, err)
		}
		run.Analysis = &res
	} else {
		lgr.Printf("[DEBUG] workflow %s reuses cached analysis", run.ID)
	}

	// store step starts only after the cached analysis is saved
	run.State = domain.RunStoring
	if err := e.checkpoint(ctx, run); err != nil {
		return domain.WorkflowResult{}, e.fail(ctx, run, err)
	}

	analysis := *run.Analysis
	err := e.step(ctx, run, stepStore, func() error {
		return e.feedback.UpdateAnalysis(ctx, params.ID, analysis)
	})
	if err != nil {
		return domain.WorkflowResult{}, e.fail(ctx, run, err)
	}

	run.State, run.LastError = domain.RunCompleted, ""
	e.saveRun(ctx, run)
	lgr.Printf("[INFO] feedback %s analyzed: %s/%s, themes %v", params.ID, analysis.Sentiment, analysis.Urgency, analysis.Themes)

	e.notify(ctx, params.ID, analysis)

	return domain.WorkflowResult{ID: params.ID, Source: params.Source, AnalysisResult: analysis}, nil
}

// step retries fn with backoff, permanent errors and cancellation stop it early
func (e *Engine) step(ctx context.Context, run *domain.WorkflowRun, name string, fn func() error) error {
	retrier := repeater.NewBackoff(e.cfg.MaxAttempts, e.cfg.RetryDelay, repeater.WithMaxDelay(e.cfg.MaxRetryDelay))
	err := retrier.Do(ctx, func() error {
		run.Attempts++
		if err := fn(); err != nil {
			lgr.Printf("[WARN] workflow %s step %s attempt failed: %v", run.ID, name, err)
			return err
		}
		return nil
	}, domain.ErrEmptyContent, repository.ErrNotFound, context.Canceled, context.DeadlineExceeded)
	if err != nil {
		return fmt.Errorf("step %s: %w", name, err)
	}
	return nil
}

// fail records the terminal failure unless the engine is shutting down
func (e *Engine) fail(ctx context.Context, run *domain.WorkflowRun, err error) error {
	if ctx.Err() != nil {
		lgr.Printf("[INFO] workflow %s interrupted in state %s", run.ID, run.State)
		return fmt.Errorf("workflow %s interrupted: %w", run.ID, ctx.Err())
	}

	run.State, run.LastError = domain.RunFailed, err.Error()
	e.saveRun(ctx, run)
	if serr := e.feedback.SetAnalysisState(ctx, run.Params.ID, domain.AnalysisFailed); serr != nil {
		lgr.Printf("[WARN] can't mark feedback %s analysis failed: %v", run.Params.ID, serr)
	}
	lgr.Printf("[ERROR] workflow %s failed after %d attempts: %v", run.ID, run.Attempts, err)
	return err
}

// checkpoint persists the run record, retried with the step backoff
func (e *Engine) checkpoint(ctx context.Context, run *domain.WorkflowRun) error {
	retrier := repeater.NewBackoff(e.cfg.MaxAttempts, e.cfg.RetryDelay, repeater.WithMaxDelay(e.cfg.MaxRetryDelay))
	err := retrier.Do(ctx, func() error {
		return e.runs.UpdateRun(ctx, run)
	}, context.Canceled, context.DeadlineExceeded)
	if err != nil {
		return fmt.Errorf("save workflow %s in state %s: %w", run.ID, run.State, err)
	}
	return nil
}

// saveRun is checkpoint for states a resumed run can recover from
func (e *Engine) saveRun(ctx context.Context, run *domain.WorkflowRun) {
	if err := e.checkpoint(ctx, run); err != nil {
		lgr.Printf("[WARN] %v", err)
	}
}

// notify is best effort, errors are only logged
func (e *Engine) notify(ctx context.Context, id string, res domain.AnalysisResult) {
	if e.notifier == nil || res.Urgency.Rank() < e.cfg.NotifyMinUrgency.Rank() {
		return
	}
	item, err := e.feedback.GetFeedback(ctx, id)
	if err != nil {
		lgr.Printf("[WARN] can't load feedback %s for notification: %v", id, err)
		return
	}
	if err := e.notifier.Notify(ctx, *item); err != nil {
		lgr.Printf("[WARN] notification for feedback %s failed: %v", id, err)
	}
}
