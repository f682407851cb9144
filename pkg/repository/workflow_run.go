package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedboard/pkg/domain"
)

// ErrRunActive returned by CreateRun when a non-failed run already exists for the item
var ErrRunActive = errors.New("workflow run is active")

// RunRepository keeps durable workflow run records
type RunRepository struct {
	db *sqlx.DB
}

type runSQL struct {
	ID         string         `db:"id"`
	FeedbackID string         `db:"feedback_id"`
	Params     string         `db:"params"`
	State      string         `db:"state"`
	Analysis   sql.NullString `db:"analysis"`
	Attempts   int            `db:"attempts"`
	LastError  string         `db:"last_error"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

// NewRunRepository creates a new workflow run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun persists a new pending run for the params. A failed or completed run with the
// same id is reset and started over, any other existing run yields ErrRunActive.
func (r *RunRepository) CreateRun(ctx context.Context, params domain.WorkflowParams) (*domain.WorkflowRun, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal run params: %w", err)
	}

	now := time.Now().UTC()
	run := &domain.WorkflowRun{
		ID:        domain.RunID(params.ID),
		Params:    params,
		State:     domain.RunPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// upsert only replaces terminal runs, so zero affected rows means an active run is in the way
	query := `
		INSERT INTO workflow_runs (id, feedback_id, params, state, analysis, attempts, last_error, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, 0, '', ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			params = excluded.params,
			state = excluded.state,
			analysis = NULL,
			attempts = 0,
			last_error = '',
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
		WHERE workflow_runs.state IN (?, ?)
	`
	err = retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, run.ID, params.ID, string(paramsJSON), string(run.State),
			now, now, string(domain.RunFailed), string(domain.RunCompleted))
		if err != nil {
			return lockOrCritical(fmt.Errorf("create run: %w", err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("create run rows affected: %w", err)}
		}
		if n == 0 {
			return &criticalError{err: fmt.Errorf("create run %s: %w", run.ID, ErrRunActive)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves a run by its id
func (r *RunRepository) GetRun(ctx context.Context, id string) (*domain.WorkflowRun, error) {
	var row runSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM workflow_runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("workflow run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return row.toDomain()
}

// UpdateRun saves state, cached analysis, attempts and last error of the run
func (r *RunRepository) UpdateRun(ctx context.Context, run *domain.WorkflowRun) error {
	var analysis sql.NullString
	if run.Analysis != nil {
		data, err := json.Marshal(run.Analysis)
		if err != nil {
			return fmt.Errorf("marshal run analysis: %w", err)
		}
		analysis = sql.NullString{String: string(data), Valid: true}
	}
	run.UpdatedAt = time.Now().UTC()

	query := `UPDATE workflow_runs SET state = ?, analysis = ?, attempts = ?, last_error = ?, updated_at = ? WHERE id = ?`
	return retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, string(run.State), analysis, run.Attempts, run.LastError, run.UpdatedAt, run.ID)
		if err != nil {
			return lockOrCritical(fmt.Errorf("update run: %w", err))
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return &criticalError{err: fmt.Errorf("update run %s: %w", run.ID, ErrNotFound)}
		}
		return nil
	})
}

// ListActiveRuns returns runs not yet completed or failed, oldest first
func (r *RunRepository) ListActiveRuns(ctx context.Context) ([]domain.WorkflowRun, error) {
	var rows []runSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM workflow_runs WHERE state NOT IN (?, ?) ORDER BY created_at, rowid",
		string(domain.RunCompleted), string(domain.RunFailed))
	if err != nil {
		return nil, fmt.Errorf("list active runs: %w", err)
	}

	runs := make([]domain.WorkflowRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, nil
}

func (r *runSQL) toDomain() (*domain.WorkflowRun, error) {
	run := &domain.WorkflowRun{
		ID:        r.ID,
		State:     domain.RunState(r.State),
		Attempts:  r.Attempts,
		LastError: r.LastError,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	if err := json.Unmarshal([]byte(r.Params), &run.Params); err != nil {
		return nil, fmt.Errorf("decode run %s params: %w", r.ID, err)
	}
	if r.Analysis.Valid && r.Analysis.String != "" {
		var res domain.AnalysisResult
		if err := json.Unmarshal([]byte(r.Analysis.String), &res); err != nil {
			return nil, fmt.Errorf("decode run %s analysis: %w", r.ID, err)
		}
		run.Analysis = &res
	}
	return run, nil
}
