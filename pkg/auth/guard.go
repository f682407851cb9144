// Package auth guards the dashboard and API with a single operator login and cookie sessions.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"golang.org/x/crypto/bcrypt"

	"github.com/umputun/feedboard/pkg/domain"
)

// CookieName is the session cookie
const CookieName = "session"

// ErrInvalidCredentials returned by Login for a wrong username or password
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials of the operator, PasswordHash (bcrypt) takes precedence over Password
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Guard checks credentials and gates requests by session cookie
type Guard struct {
	creds  Credentials
	store  SessionStore
	ttl    time.Duration
	public map[string]bool
}

// NewGuard makes a guard for the operator credentials
func NewGuard(creds Credentials, store SessionStore, ttl time.Duration) *Guard {
	return &Guard{
		creds: creds,
		store: store,
		ttl:   ttl,
		public: map[string]bool{
			"/": true, "/login": true, "/login.html": true,
			"/api/login": true, "/api/logout": true, "/ping": true,
		},
	}
}

// Login checks the credentials and creates a session
func (g *Guard) Login(ctx context.Context, username, password string) (domain.Session, error) {
	if !g.check(username, password) {
		return domain.Session{}, ErrInvalidCredentials
	}
	sess, err := g.store.Create(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Logout removes the session, empty token is a no-op
func (g *Guard) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return g.store.Delete(ctx, token)
}

// Authenticated reports whether the request carries a valid session cookie
func (g *Guard) Authenticated(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return false
	}
	ok, err := g.store.Valid(r.Context(), c.Value)
	if err != nil {
		lgr.Printf("[WARN] can't check session: %v", err)
		return false
	}
	return ok
}

// Middleware lets public paths and preflight requests through. Other requests without a
// valid session get 401 for the API and a redirect to the login page otherwise.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || g.public[r.URL.Path] || g.Authenticated(r) {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			rest.RenderJSON(w, rest.JSON{"error": "Unauthorized"})
			return
		}
		http.Redirect(w, r, "/login", http.StatusFound)
	})
}

// SetCookie writes the session cookie
func (g *Guard) SetCookie(w http.ResponseWriter, sess domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(g.ttl.Seconds()),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie
func (g *Guard) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteStrictMode})
}

// Token returns the session token from the request cookie
func Token(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (g *Guard) check(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username)) == 1
	if g.creds.PasswordHash != "" {
		passOK := bcrypt.CompareHashAndPassword([]byte(g.creds.PasswordHash), []byte(password)) == nil
		return userOK && passOK
	}
	passOK := g.creds.Password != "" && subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password)) == 1
	return userOK && passOK
}
