package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/alfredjeanlab/gazette/internal/auth"
	"github.com/alfredjeanlab/gazette/internal/events"
	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store"
)

// sessionCookie is the name of the login session cookie.
const sessionCookie = "gazette_session"

// loginPath is where anonymous requests to protected pages are sent.
const loginPath = "/auth/login"

type userContextKey struct{}

// currentUser resolves the session cookie to a signed-in user. Returns nil
// when the request is anonymous, the session is unknown, or it has expired.
func (s *Server) currentUser(r *http.Request) *model.User {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}

	session, err := s.store.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	if session.ExpiredAt(time.Now().UTC()) {
		return nil
	}

	user, err := s.store.GetUserByID(r.Context(), session.UserID)
	if err != nil {
		return nil
	}
	return user
}

// requireUser wraps a handler so only signed-in users reach it. Anonymous
// requests get a redirect to the login page with the original path in the
// next query parameter.
func (s *Server) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.currentUser(r)
		if user == nil {
			// Escape the original URL so the login page can send the user
			// straight back, query string included.
			next := r.URL.Path
			if r.URL.RawQuery != "" {
				next += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(next), http.StatusFound)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey{}, user)
		next(w, r.WithContext(ctx))
	}
}

// userFrom returns the signed-in user stored by requireUser.
func userFrom(r *http.Request) *model.User {
	user, _ := r.Context().Value(userContextKey{}).(*model.User)
	return user
}

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *credentialsInput) validate() error {
	var ve model.ValidationError
	if in.Username == "" {
		ve.Errors = append(ve.Errors, model.FieldError{Field: "username", Message: "is required"})
	}
	if in.Password == "" {
		ve.Errors = append(ve.Errors, model.FieldError{Field: "password", Message: "is required"})
	}
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// handleSignup handles POST /auth/signup.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := &model.User{
		Username:     in.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeFieldErrors(w, map[string]string{"username": "is already taken"})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	s.publish(r.Context(), events.TopicUserSignedUp, events.UserSignedUp{
		UserID:   user.ID,
		Username: user.Username,
	})

	writeJSON(w, http.StatusCreated, user)
}

// handleLogin handles POST /auth/login. A successful login invalidates any
// previous sessions for the user before issuing a new cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := in.validate(); err != nil {
		writeValidationError(w, err)
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), in.Username)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	if err := s.store.DeleteUserSessions(r.Context(), user.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	session, err := auth.NewSession(user.ID, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if err := s.store.CreateSession(r.Context(), session); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, user)
}

// handleLogout handles POST /auth/logout.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.store.DeleteSession(r.Context(), cookie.Value); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to log out")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	w.WriteHeader(http.StatusNoContent)
}

// handleLoginPage handles GET /auth/login. The page itself is public so the
// redirect target for anonymous users always resolves.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"page": "login",
		"next": r.URL.Query().Get("next"),
	})
}

// handleSignupPage handles GET /auth/signup.
func (s *Server) handleSignupPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "signup"})
}

// handleLogoutPage handles GET /auth/logout, the logout confirmation page.
func (s *Server) handleLogoutPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "logout"})
}
