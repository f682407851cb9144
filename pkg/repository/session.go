package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/feedboard/pkg/domain"
)

// SessionRepository keeps operator sessions
type SessionRepository struct {
	db *sqlx.DB
}

type sessionSQL struct {
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession stores the session
func (r *SessionRepository) CreateSession(ctx context.Context, s domain.Session) error {
	row := sessionSQL{Token: s.Token, CreatedAt: s.CreatedAt.UTC(), ExpiresAt: s.ExpiresAt.UTC()}
	return retryOnLock(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx,
			"INSERT INTO sessions (token, created_at, expires_at) VALUES (:token, :created_at, :expires_at)", row)
		if err != nil {
			return lockOrCritical(fmt.Errorf("create session: %w", err))
		}
		return nil
	})
}

// GetSession retrieves the session by token, expired sessions are returned as is
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	var row sessionSQL
	err := r.db.GetContext(ctx, &row, "SELECT token, created_at, expires_at FROM sessions WHERE token = ?", token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &domain.Session{Token: row.Token, CreatedAt: row.CreatedAt.UTC(), ExpiresAt: row.ExpiresAt.UTC()}, nil
}

// DeleteSession removes the session, missing tokens are ignored
func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	return retryOnLock(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token); err != nil {
			return lockOrCritical(fmt.Errorf("delete session: %w", err))
		}
		return nil
	})
}

// DeleteExpired removes sessions expired at the given time and returns how many were removed
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	err := retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now.UTC())
		if err != nil {
			return lockOrCritical(fmt.Errorf("delete expired sessions: %w", err))
		}
		removed, _ = res.RowsAffected()
		return nil
	})
	return removed, err
}
