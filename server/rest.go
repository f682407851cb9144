package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/feedboard/pkg/auth"
	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/intake"
	"github.com/umputun/feedboard/pkg/repository"
	"github.com/umputun/feedboard/pkg/workflow"
)

// runResponse is the workflow run as reported to clients
type runResponse struct {
	ID        string                 `json:"id"`
	State     domain.RunState        `json:"state"`
	Attempts  int                    `json:"attempts"`
	LastError string                 `json:"last_error,omitempty"`
	Analysis  *domain.AnalysisResult `json:"analysis,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// initHandler creates the database schema, repeated calls are harmless
func (s *Server) initHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.InitSchema(r.Context()); err != nil {
		lgr.Printf("[ERROR] failed to init schema: %v", err)
		renderJSON(w, r, http.StatusInternalServerError, rest.JSON{"success": false, "error": err.Error()})
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "message": "Database initialized"})
}

// seedHandler inserts the sample feedback set
func (s *Server) seedHandler(w http.ResponseWriter, r *http.Request) {
	results, err := s.intake.Seed(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to seed feedback: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "count": len(results), "results": results})
}

// listFeedbackHandler returns feedback, newest first, optionally for a single column
func (s *Server) listFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var filter domain.FeedbackFilter
	if v := r.URL.Query().Get("status"); v != "" {
		st, err := domain.ParseStatus(v)
		if err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		filter.Status = st
	}

	items, err := s.db.ListFeedback(r.Context(), filter)
	if err != nil {
		lgr.Printf("[ERROR] failed to list feedback: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.FeedbackItem{}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"feedback": items})
}

// createFeedbackHandler stores a new item and schedules its analysis
func (s *Server) createFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	res, err := s.intake.Submit(r.Context(), sub)
	if errors.Is(err, intake.ErrContentRequired) {
		renderJSON(w, r, http.StatusBadRequest, rest.JSON{"error": "Content is required"})
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to submit feedback: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	renderJSON(w, r, http.StatusCreated, rest.JSON{
		"success": true,
		"id":      res.ID,
		"message": "Feedback submitted and queued for analysis",
	})
}

// getFeedbackHandler returns a single item
func (s *Server) getFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	item, err := s.db.GetFeedback(r.Context(), r.PathValue("id"))
	if err != nil {
		renderStoreError(w, r, "get feedback", err)
		return
	}
	renderJSON(w, r, http.StatusOK, item)
}

// updateFeedbackHandler moves the item to another column, analysis fields are never touched
func (s *Server) updateFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if req.Status != "" {
		st, err := domain.ParseStatus(req.Status)
		if err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		if err := s.db.UpdateStatus(r.Context(), id, st); err != nil {
			renderStoreError(w, r, "update feedback status", err)
			return
		}
	}

	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "id": id})
}

// deleteFeedbackHandler removes the item
func (s *Server) deleteFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.db.DeleteFeedback(r.Context(), id); err != nil {
		renderStoreError(w, r, "delete feedback", err)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true, "id": id})
}

// analyzeFeedbackHandler schedules the analysis again for an item without stored analysis
func (s *Server) analyzeFeedbackHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.intake.Reanalyze(r.Context(), id)
	switch {
	case err == nil:
		renderJSON(w, r, http.StatusAccepted, rest.JSON{"success": true, "id": id, "message": "Feedback queued for analysis"})
	case errors.Is(err, repository.ErrNotFound):
		renderError(w, r, fmt.Errorf("feedback %s not found", id), http.StatusNotFound)
	case errors.Is(err, intake.ErrAlreadyAnalyzed), errors.Is(err, workflow.ErrAlreadyQueued):
		renderError(w, r, err, http.StatusConflict)
	default:
		lgr.Printf("[ERROR] failed to reanalyze feedback %s: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
	}
}

// workflowStatusHandler reports the analysis run of the item
func (s *Server) workflowStatusHandler(w http.ResponseWriter, r *http.Request) {
	run, err := s.workflow.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		renderStoreError(w, r, "get workflow status", err)
		return
	}
	renderJSON(w, r, http.StatusOK, runResponse{
		ID:        run.ID,
		State:     run.State,
		Attempts:  run.Attempts,
		LastError: run.LastError,
		Analysis:  run.Analysis,
		CreatedAt: run.CreatedAt,
		UpdatedAt: run.UpdatedAt,
	})
}

// loginHandler checks credentials and sets the session cookie
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	sess, err := s.guard.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		lgr.Printf("[WARN] failed login for %q from %s", req.Username, r.RemoteAddr)
		renderJSON(w, r, http.StatusUnauthorized, rest.JSON{"success": false, "error": "Invalid credentials"})
		return
	}
	if err != nil {
		lgr.Printf("[ERROR] failed to login: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.guard.SetCookie(w, sess)
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true})
}

// logoutHandler drops the session and clears the cookie
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.guard.Logout(r.Context(), auth.Token(r)); err != nil {
		lgr.Printf("[WARN] failed to delete session: %v", err)
	}
	s.guard.ClearCookie(w)
	renderJSON(w, r, http.StatusOK, rest.JSON{"success": true})
}

// renderStoreError maps missing records to 404, everything else is 500
func renderStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, fmt.Errorf("feedback %s not found", r.PathValue("id")), http.StatusNotFound)
		return
	}
	lgr.Printf("[ERROR] failed to %s: %v", op, err)
	renderError(w, r, err, http.StatusInternalServerError)
}
