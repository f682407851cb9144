package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedboard/pkg/domain"
)

// FeedbackRepository handles feedback-related database operations
type FeedbackRepository struct {
	db *sqlx.DB
}

// feedbackSQL represents a feedback row for SQL operations
type feedbackSQL struct {
	ID       string `db:"id"`
	Source   string `db:"source"`
	SourceID string `db:"source_id"`
	Title    string `db:"title"`
	Content  string `db:"content"`

	Sentiment      string          `db:"sentiment"`
	SentimentScore sql.NullFloat64 `db:"sentiment_score"`
	Urgency        string          `db:"urgency"`
	Themes         themesSQL       `db:"themes"`
	Summary        string          `db:"summary"`

	Status        string     `db:"status"`
	AnalysisState string     `db:"analysis_state"`
	CreatedAt     time.Time  `db:"created_at"`
	ProcessedAt   *time.Time `db:"processed_at"`
}

// themesSQL is a JSON array of theme strings for SQL operations
type themesSQL []string

// Value implements driver.Valuer for database storage
func (t themesSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (t *themesSQL) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*t = themesSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected themes type %T", value)
	}

	res := themesSQL{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &res); err != nil {
			return fmt.Errorf("decode themes: %w", err)
		}
	}
	*t = res
	return nil
}

const feedbackColumns = `id, source, source_id, title, content, sentiment, sentiment_score, urgency,
	themes, summary, status, analysis_state, created_at, processed_at`

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Insert stores a new feedback item. Missing id, source, status, analysis state and
// creation time are filled in and written back to the item.
func (r *FeedbackRepository) Insert(ctx context.Context, item *domain.FeedbackItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Source == "" {
		item.Source = "manual"
	}
	if item.Status == "" {
		item.Status = domain.StatusInbox
	}
	if !item.Status.Valid() {
		return fmt.Errorf("insert feedback: invalid status %q", item.Status)
	}
	if item.AnalysisState == "" {
		item.AnalysisState = domain.AnalysisPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if item.Themes == nil {
		item.Themes = []string{}
	}

	row := toFeedbackSQL(item)
	query := `
		INSERT INTO feedback (
			id, source, source_id, title, content, sentiment, sentiment_score, urgency,
			themes, summary, status, analysis_state, created_at, processed_at
		) VALUES (
			:id, :source, :source_id, :title, :content, :sentiment, :sentiment_score, :urgency,
			:themes, :summary, :status, :analysis_state, :created_at, :processed_at
		)
	`
	return retryOnLock(ctx, func() error {
		if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
			return lockOrCritical(fmt.Errorf("insert feedback: %w", err))
		}
		return nil
	})
}

// GetFeedback retrieves a feedback item by id
func (r *FeedbackRepository) GetFeedback(ctx context.Context, id string) (*domain.FeedbackItem, error) {
	var row feedbackSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+feedbackColumns+" FROM feedback WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("feedback %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}
	return row.toDomain(), nil
}

// ListFeedback returns feedback items, newest first, optionally limited to one status
func (r *FeedbackRepository) ListFeedback(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackItem, error) {
	query := "SELECT " + feedbackColumns + " FROM feedback"
	var args []interface{}
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	var rows []feedbackSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	items := make([]domain.FeedbackItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].toDomain()
	}
	return items, nil
}

// UpdateStatus changes the board column of the item, nothing else is touched
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("update status: invalid status %q", status)
	}
	return r.execOne(ctx, "update status", id, "UPDATE feedback SET status = ? WHERE id = ?", string(status), id)
}

// UpdateAnalysis stores analysis results in a single statement. processed_at is set on
// the first call only, so repeating the update with the same result changes nothing.
func (r *FeedbackRepository) UpdateAnalysis(ctx context.Context, id string, res domain.AnalysisResult) error {
	query := `
		UPDATE feedback
		SET sentiment = ?,
		    sentiment_score = ?,
		    urgency = ?,
		    themes = ?,
		    summary = ?,
		    analysis_state = ?,
		    processed_at = COALESCE(processed_at, ?)
		WHERE id = ?
	`
	return r.execOne(ctx, "update analysis", id, query, string(res.Sentiment), res.SentimentScore,
		string(res.Urgency), themesSQL(res.Themes), res.Summary, string(domain.AnalysisDone), time.Now().UTC(), id)
}

// SetAnalysisState records where the item is in the analysis pipeline
func (r *FeedbackRepository) SetAnalysisState(ctx context.Context, id string, state domain.AnalysisState) error {
	return r.execOne(ctx, "set analysis state", id, "UPDATE feedback SET analysis_state = ? WHERE id = ?", string(state), id)
}

// Delete removes the feedback item and its workflow run
func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	if err := r.execOne(ctx, "delete feedback", id, "DELETE FROM feedback WHERE id = ?", id); err != nil {
		return err
	}
	return retryOnLock(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM workflow_runs WHERE feedback_id = ?", id); err != nil {
			return lockOrCritical(fmt.Errorf("delete workflow run: %w", err))
		}
		return nil
	})
}

// ExistsBySource checks if an item with the given external id was already stored for the source
func (r *FeedbackRepository) ExistsBySource(ctx context.Context, source, sourceID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM feedback WHERE source = ? AND source_id = ?)", source, sourceID)
	if err != nil {
		return false, fmt.Errorf("check feedback exists: %w", err)
	}
	return exists, nil
}

// execOne runs a write expected to hit exactly one row, ErrNotFound otherwise
func (r *FeedbackRepository) execOne(ctx context.Context, op, id, query string, args ...interface{}) error {
	return retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return lockOrCritical(fmt.Errorf("%s: %w", op, err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("%s rows affected: %w", op, err)}
		}
		if n == 0 {
			return &criticalError{err: fmt.Errorf("%s, feedback %s: %w", op, id, ErrNotFound)}
		}
		return nil
	})
}

func toFeedbackSQL(item *domain.FeedbackItem) *feedbackSQL {
	row := &feedbackSQL{
		ID:            item.ID,
		Source:        item.Source,
		SourceID:      item.SourceID,
		Title:         item.Title,
		Content:       item.Content,
		Sentiment:     string(item.Sentiment),
		Urgency:       string(item.Urgency),
		Themes:        themesSQL(item.Themes),
		Summary:       item.Summary,
		Status:        string(item.Status),
		AnalysisState: string(item.AnalysisState),
		CreatedAt:     item.CreatedAt.UTC(),
	}
	if item.ProcessedAt != nil {
		t := item.ProcessedAt.UTC()
		row.ProcessedAt = &t
	}
	if item.SentimentScore != nil {
		row.SentimentScore = sql.NullFloat64{Float64: *item.SentimentScore, Valid: true}
	}
	return row
}

func (f *feedbackSQL) toDomain() *domain.FeedbackItem {
	item := &domain.FeedbackItem{
		ID:            f.ID,
		Source:        f.Source,
		SourceID:      f.SourceID,
		Title:         f.Title,
		Content:       f.Content,
		Sentiment:     domain.Sentiment(f.Sentiment),
		Urgency:       domain.Urgency(f.Urgency),
		Themes:        []string(f.Themes),
		Summary:       f.Summary,
		Status:        domain.Status(f.Status),
		AnalysisState: domain.AnalysisState(f.AnalysisState),
		CreatedAt:     f.CreatedAt.UTC(),
	}
	if item.Themes == nil {
		item.Themes = []string{}
	}
	if f.SentimentScore.Valid {
		score := f.SentimentScore.Float64
		item.SentimentScore = &score
	}
	if f.ProcessedAt != nil {
		t := f.ProcessedAt.UTC()
		item.ProcessedAt = &t
	}
	return item
}
