package domain

import "time"

// Session is an authenticated operator session
type Session struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiration time
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
