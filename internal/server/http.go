package server

import (
	"encoding/json"
	"net/http"

	"github.com/alfredjeanlab/gazette/internal/metrics"
	"github.com/alfredjeanlab/gazette/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// Routes under /notes and the comment mutation routes require a signed-in
// user; anonymous requests are redirected to the login page.
func (s *Server) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()

	// Public pages.
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /news", s.handleListNews)
	mux.HandleFunc("GET /news/{id}", s.handleGetNews)

	// Accounts.
	mux.HandleFunc("POST /auth/signup", s.handleSignup)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/login", s.handleLoginPage)
	mux.HandleFunc("GET /auth/signup", s.handleSignupPage)
	mux.HandleFunc("GET /auth/logout", s.handleLogoutPage)

	// Comments. Creation and every mutation require the signed-in author.
	mux.HandleFunc("POST /news/{id}/comments", s.requireUser(s.handleCreateComment))
	mux.HandleFunc("GET /comments/{id}", s.requireUser(s.handleGetComment))
	mux.HandleFunc("PATCH /comments/{id}", s.requireUser(s.handleUpdateComment))
	mux.HandleFunc("DELETE /comments/{id}", s.requireUser(s.handleDeleteComment))

	// Notes. Everything is private to the signed-in owner.
	mux.HandleFunc("GET /notes", s.requireUser(s.handleListNotes))
	mux.HandleFunc("POST /notes", s.requireUser(s.handleCreateNote))
	mux.HandleFunc("GET /notes/done", s.requireUser(s.handleNotesDone))
	mux.HandleFunc("GET /notes/{slug}", s.requireUser(s.handleGetNote))
	mux.HandleFunc("PATCH /notes/{slug}", s.requireUser(s.handleUpdateNote))
	mux.HandleFunc("DELETE /notes/{slug}", s.requireUser(s.handleDeleteNote))

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	return chain(mux)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFieldErrors writes a 400 response carrying per-field validation
// messages, keeping the submission itself out of the database.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
}

// writeValidationError writes either a field-error response (for
// *model.ValidationError) or a plain 400 for other input errors.
func writeValidationError(w http.ResponseWriter, err error) {
	if ve, ok := err.(*model.ValidationError); ok {
		writeFieldErrors(w, ve.Fields())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
