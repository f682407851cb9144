// Package intake is the single create path for feedback: manual submissions, seeding
// and feed imports all go through Service.Submit.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/workflow"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/dispatcher.go -pkg mocks -skip-ensure -fmt goimports . Dispatcher

// DefaultSource is used when the submission has no source
const DefaultSource = "manual"

// submit outcomes reported to clients
const (
	ResultProcessing = "processing"
	ResultNoAnalysis = "inserted-no-analysis"
)

var (
	// ErrContentRequired returned for submissions without content
	ErrContentRequired = errors.New("content is required")
	// ErrAlreadyAnalyzed returned by Reanalyze for items with stored analysis
	ErrAlreadyAnalyzed = errors.New("feedback already analyzed")
)

// Store is the part of the record store used for intake
type Store interface {
	Insert(ctx context.Context, item *domain.FeedbackItem) error
	GetFeedback(ctx context.Context, id string) (*domain.FeedbackItem, error)
	SetAnalysisState(ctx context.Context, id string, state domain.AnalysisState) error
}

// Dispatcher schedules the analysis workflow
type Dispatcher interface {
	Enqueue(ctx context.Context, params domain.WorkflowParams) error
}

// Submission is a new piece of feedback
type Submission struct {
	Source   string `json:"source"`
	SourceID string `json:"source_id,omitempty"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// SubmitResult tells whether the analysis was scheduled for the inserted item
type SubmitResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Service inserts feedback and dispatches analysis
type Service struct {
	store      Store
	dispatcher Dispatcher
}

// NewService makes intake service
func NewService(store Store, dispatcher Dispatcher) *Service {
	return &Service{store: store, dispatcher: dispatcher}
}

// Submit stores the feedback and schedules its analysis. A dispatch failure doesn't fail
// the submission, the item is kept with analysis state dispatch_failed.
func (s *Service) Submit(ctx context.Context, sub Submission) (SubmitResult, error) {
	item := &domain.FeedbackItem{
		Source:   strings.TrimSpace(sub.Source),
		SourceID: strings.TrimSpace(sub.SourceID),
		Title:    strings.TrimSpace(sub.Title),
		Content:  strings.TrimSpace(sub.Content),
	}
	if item.Content == "" {
		return SubmitResult{}, ErrContentRequired
	}
	if item.Source == "" {
		item.Source = DefaultSource
	}

	if err := s.store.Insert(ctx, item); err != nil {
		return SubmitResult{}, fmt.Errorf("insert feedback: %w", err)
	}
	lgr.Printf("[DEBUG] feedback %s inserted from %s", item.ID, item.Source)

	if err := s.dispatch(ctx, item); err != nil {
		lgr.Printf("[WARN] feedback %s stored without analysis: %v", item.ID, err)
		return SubmitResult{ID: item.ID, Status: ResultNoAnalysis}, nil
	}
	return SubmitResult{ID: item.ID, Status: ResultProcessing}, nil
}

// Seed submits the canned demo feedback, each sample is dispatched independently
func (s *Service) Seed(ctx context.Context) ([]SubmitResult, error) {
	results := make([]SubmitResult, 0, len(samples))
	for _, sample := range samples {
		res, err := s.Submit(ctx, sample)
		if err != nil {
			return results, fmt.Errorf("seed %q: %w", sample.Title, err)
		}
		results = append(results, res)
	}
	lgr.Printf("[INFO] seeded %d feedback items", len(results))
	return results, nil
}

// Reanalyze dispatches the analysis again for an item whose analysis was not stored
func (s *Service) Reanalyze(ctx context.Context, id string) error {
	item, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return fmt.Errorf("reanalyze: %w", err)
	}
	if item.Processed() {
		return fmt.Errorf("reanalyze %s: %w", id, ErrAlreadyAnalyzed)
	}
	if err := s.dispatch(ctx, item); err != nil {
		return fmt.Errorf("reanalyze %s: %w", id, err)
	}
	lgr.Printf("[INFO] feedback %s queued for analysis again", id)
	return nil
}

// dispatch marks the item queued and enqueues its workflow. The state is set first,
// so a fast workflow can't have its result overwritten.
func (s *Service) dispatch(ctx context.Context, item *domain.FeedbackItem) error {
	if err := s.store.SetAnalysisState(ctx, item.ID, domain.AnalysisQueued); err != nil {
		lgr.Printf("[WARN] can't mark feedback %s queued: %v", item.ID, err)
	}

	params := domain.WorkflowParams{ID: item.ID, Source: item.Source, SourceID: item.SourceID, Title: item.Title, Content: item.Content}
	err := s.dispatcher.Enqueue(ctx, params)
	if err == nil {
		return nil
	}
	if errors.Is(err, workflow.ErrAlreadyQueued) {
		// the active run owns the state, put back what it had
		if prev := item.AnalysisState; prev != "" && prev != domain.AnalysisQueued {
			if serr := s.store.SetAnalysisState(ctx, item.ID, prev); serr != nil {
				lgr.Printf("[WARN] can't restore feedback %s analysis state %s: %v", item.ID, prev, serr)
			}
		}
		return err
	}

	if serr := s.store.SetAnalysisState(ctx, item.ID, domain.AnalysisDispatchFailed); serr != nil {
		lgr.Printf("[WARN] can't mark feedback %s dispatch failed: %v", item.ID, serr)
	}
	return fmt.Errorf("dispatch analysis: %w", err)
}
