package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/repository"
)

//go:generate moq -out mocks/session_store.go -pkg mocks -skip-ensure -fmt goimports . SessionStore

// SessionStore keeps operator sessions
type SessionStore interface {
	Create(ctx context.Context) (domain.Session, error)
	Valid(ctx context.Context, token string) (bool, error)
	Delete(ctx context.Context, token string) error
}

// SessionRepo is the persistent session storage
type SessionRepo interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSession(ctx context.Context, token string) (*domain.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// DBStore is a SessionStore backed by the database, sessions survive restarts
type DBStore struct {
	repo SessionRepo
	ttl  time.Duration
}

// NewDBStore makes a persistent session store
func NewDBStore(repo SessionRepo, ttl time.Duration) *DBStore {
	return &DBStore{repo: repo, ttl: ttl}
}

// Create makes and stores a new session, expired sessions are purged on the way
func (s *DBStore) Create(ctx context.Context) (domain.Session, error) {
	now := time.Now().UTC()
	if _, err := s.repo.DeleteExpired(ctx, now); err != nil {
		return domain.Session{}, fmt.Errorf("purge sessions: %w", err)
	}

	sess, err := newSession(now, s.ttl)
	if err != nil {
		return domain.Session{}, err
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return domain.Session{}, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Valid reports whether the token belongs to an unexpired session
func (s *DBStore) Valid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	sess, err := s.repo.GetSession(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get session: %w", err)
	}
	return !sess.Expired(time.Now().UTC()), nil
}

// Delete removes the session
func (s *DBStore) Delete(ctx context.Context, token string) error {
	if err := s.repo.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// MemoryStore keeps sessions in process memory, they are lost on restart
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore makes an in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 10*time.Minute), ttl: ttl}
}

// Create makes a new session expiring after the store ttl
func (m *MemoryStore) Create(_ context.Context) (domain.Session, error) {
	sess, err := newSession(time.Now().UTC(), m.ttl)
	if err != nil {
		return domain.Session{}, err
	}
	m.cache.Set(sess.Token, sess, m.ttl)
	return sess, nil
}

// Valid reports whether the token belongs to an unexpired session
func (m *MemoryStore) Valid(_ context.Context, token string) (bool, error) {
	v, found := m.cache.Get(token)
	if !found {
		return false, nil
	}
	sess, ok := v.(domain.Session)
	return ok && !sess.Expired(time.Now().UTC()), nil
}

// Delete removes the session
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.cache.Delete(token)
	return nil
}

// newSession makes a session with a random 256-bit token
func newSession(now time.Time, ttl time.Duration) (domain.Session, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return domain.Session{}, fmt.Errorf("generate session token: %w", err)
	}
	return domain.Session{Token: hex.EncodeToString(b), CreatedAt: now, ExpiresAt: now.Add(ttl)}, nil
}
