package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"golang.org/x/net/netutil"

	"github.com/umputun/feedboard/pkg/config"
	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/intake"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/intake.go -pkg mocks -skip-ensure -fmt goimports . Intake
//go:generate moq -out mocks/workflow.go -pkg mocks -skip-ensure -fmt goimports . Workflow

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	db       Database
	intake   Intake
	workflow Workflow
	guard    Authenticator
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Database interface for feedback records
type Database interface {
	InitSchema(ctx context.Context) error
	GetFeedback(ctx context.Context, id string) (*domain.FeedbackItem, error)
	ListFeedback(ctx context.Context, filter domain.FeedbackFilter) ([]domain.FeedbackItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	DeleteFeedback(ctx context.Context, id string) error
}

// Intake creates feedback and schedules its analysis
type Intake interface {
	Submit(ctx context.Context, sub intake.Submission) (intake.SubmitResult, error)
	Seed(ctx context.Context) ([]intake.SubmitResult, error)
	Reanalyze(ctx context.Context, id string) error
}

// Workflow reports analysis runs
type Workflow interface {
	Status(ctx context.Context, feedbackID string) (*domain.WorkflowRun, error)
}

// Authenticator checks operator credentials and guards routes
type Authenticator interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Logout(ctx context.Context, token string) error
	Authenticated(r *http.Request) bool
	Middleware(next http.Handler) http.Handler
	SetCookie(w http.ResponseWriter, sess domain.Session)
	ClearCookie(w http.ResponseWriter)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFullConfig() *config.Config
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, in Intake, wf Workflow, guard Authenticator, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		db:       db,
		intake:   in,
		workflow: wf,
		guard:    guard,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	maxConns := s.config.GetFullConfig().Server.MaxConns

	ln, err := net.Listen("tcp", listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listen, err)
	}
	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}
	lgr.Printf("[INFO] starting server on %s, max connections %d", ln.Addr(), maxConns)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		IdleTimeout:       timeout * 2,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("feedboard", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
	s.router.Use(s.corsMiddleware)
	s.router.Use(s.guard.Middleware)
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /init", s.initHandler)
		r.HandleFunc("POST /seed", s.seedHandler)
		r.HandleFunc("POST /login", s.loginHandler)
		r.HandleFunc("POST /logout", s.logoutHandler)

		r.HandleFunc("GET /feedback", s.listFeedbackHandler)
		r.HandleFunc("POST /feedback", s.createFeedbackHandler)
		r.HandleFunc("GET /feedback/{id}", s.getFeedbackHandler)
		r.HandleFunc("PATCH /feedback/{id}", s.updateFeedbackHandler)
		r.HandleFunc("DELETE /feedback/{id}", s.deleteFeedbackHandler)
		r.HandleFunc("POST /feedback/{id}/analyze", s.analyzeFeedbackHandler)
		r.HandleFunc("GET /feedback/{id}/workflow", s.workflowStatusHandler)
	})

	// pages
	s.router.HandleFunc("GET /{$}", s.loginPageHandler)
	s.router.HandleFunc("GET /login", s.loginPageHandler)
	s.router.HandleFunc("GET /login.html", s.loginPageHandler)
	s.router.HandleFunc("GET /dashboard", s.dashboardPageHandler)
	s.router.HandleFunc("GET /dashboard/", s.dashboardPageHandler)
}

// corsMiddleware adds CORS headers and answers preflight requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origin := s.config.GetFullConfig().Server.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
