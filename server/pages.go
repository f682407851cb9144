package server

import (
	"net/http"
	"path/filepath"

	"github.com/go-pkgz/lgr"
)

// loginPageHandler serves the login page, logged in operators go straight to the dashboard
func (s *Server) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	if s.guard.Authenticated(r) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.servePage(w, r, "login.html")
}

// dashboardPageHandler serves the board, the guard has already checked the session
func (s *Server) dashboardPageHandler(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "index.html")
}

// servePage sends a file from the configured web root, 404 if there is none
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, name string) {
	webRoot := s.config.GetFullConfig().Server.WebRoot
	if webRoot == "" {
		lgr.Printf("[DEBUG] no web root configured, can't serve %s", name)
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(webRoot, name))
}
