package server

import (
	"context"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// InitSchema creates missing tables and indexes
func (r *RepositoryAdapter) InitSchema(ctx context.Context) error {
	return r.repos.InitSchema(ctx)
}

// GetFeedback returns a single item
func (r *RepositoryAdapter) GetFeedback(ctx context.Context, id string) (*domain.FeedbackItem, error) {
	return r.repos.Feedback.GetFeedback(ctx, id)
}

// ListFeedback returns items matching the filter, newest first
func (r *RepositoryAdapter) ListFeedback(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackItem, error) {
	return r.repos.Feedback.ListFeedback(ctx, filter)
}

// UpdateStatus changes the board column of the item
func (r *RepositoryAdapter) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	return r.repos.Feedback.UpdateStatus(ctx, id, status)
}

// DeleteFeedback removes the item with its workflow run
func (r *RepositoryAdapter) DeleteFeedback(ctx context.Context, id string) error {
	return r.repos.Feedback.Delete(ctx, id)
}
