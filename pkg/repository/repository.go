// Package repository is the sqlite record store of feedboard. It keeps three tables:
// feedback items with their analysis, durable workflow runs, and operator sessions.
package repository

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// defaultDSN is a file database next to the binary, writers take the lock up front
const defaultDSN = "file:feedboard.db?cache=shared&mode=rwc&_txlock=immediate"

// sqlitePragmas are applied on open. WAL lets the dashboard read while the workflow writes.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA cache_size = -16000", // 16MB
	"PRAGMA temp_store = MEMORY",
	"PRAGMA busy_timeout = 5000",
}

// Config is the connection setup of the feedback database
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories bundles the feedback, workflow run and session stores sharing one connection pool
type Repositories struct {
	Feedback *FeedbackRepository
	Run      *RunRepository
	Session  *SessionRepository
	DB       *sqlx.DB
}

// NewRepositories opens the feedback database and makes sure the feedback, workflow_runs
// and sessions tables exist
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = defaultDSN
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init feedback schema: %w", err)
	}

	return &Repositories{
		Feedback: NewFeedbackRepository(db),
		Run:      NewRunRepository(db),
		Session:  NewSessionRepository(db),
		DB:       db,
	}, nil
}

// Close releases the connection pool
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping checks the feedback database is reachable
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// InitSchema creates missing feedback, workflow_runs and sessions tables with their indexes.
// Existing rows are never touched, so repeated calls are harmless.
func (r *Repositories) InitSchema(ctx context.Context) error {
	return initSchema(ctx, r.DB)
}

func initSchema(ctx context.Context, db *sqlx.DB) error {
	ddl, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
