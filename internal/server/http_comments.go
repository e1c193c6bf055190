package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alfredjeanlab/gazette/internal/events"
	"github.com/alfredjeanlab/gazette/internal/metrics"
	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/moderation"
)

type commentInput struct {
	Text string `json:"text"`
}

// handleCreateComment handles POST /news/{id}/comments.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	newsID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "news not found")
		return
	}

	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// The news item must exist before anything is written.
	if _, err := s.store.GetNews(r.Context(), newsID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "news not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	user := userFrom(r)
	comment := &model.Comment{
		NewsID:    newsID,
		AuthorID:  user.ID,
		Author:    user.Username,
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := model.ValidateComment(comment); err != nil {
		writeValidationError(w, err)
		return
	}
	if s.moderation.Banned(comment.Text) {
		metrics.CommentsRejected.Inc()
		writeFieldErrors(w, map[string]string{"text": moderation.Warning})
		return
	}

	if err := s.store.CreateComment(r.Context(), comment); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create comment")
		return
	}

	s.publish(r.Context(), events.TopicCommentCreated, events.CommentCreated{Comment: comment})

	writeJSON(w, http.StatusCreated, comment)
}

// authorizeComment loads a comment and verifies the caller is its author.
// Comments belonging to someone else are reported as missing, not forbidden.
func (s *Server) authorizeComment(w http.ResponseWriter, r *http.Request) *model.Comment {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil
	}

	comment, err := s.store.GetComment(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get comment")
		return nil
	}

	if comment.AuthorID != userFrom(r).ID {
		writeError(w, http.StatusNotFound, "comment not found")
		return nil
	}
	return comment
}

// handleGetComment handles GET /comments/{id}.
func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	comment := s.authorizeComment(w, r)
	if comment == nil {
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

// handleUpdateComment handles PATCH /comments/{id}. Edited text goes through
// the same moderation filter as new comments.
func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	comment := s.authorizeComment(w, r)
	if comment == nil {
		return
	}

	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	comment.Text = in.Text
	if err := model.ValidateComment(comment); err != nil {
		writeValidationError(w, err)
		return
	}
	if s.moderation.Banned(comment.Text) {
		metrics.CommentsRejected.Inc()
		writeFieldErrors(w, map[string]string{"text": moderation.Warning})
		return
	}

	if err := s.store.UpdateComment(r.Context(), comment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update comment")
		return
	}

	s.publish(r.Context(), events.TopicCommentUpdated, events.CommentUpdated{Comment: comment})

	writeJSON(w, http.StatusOK, comment)
}

// handleDeleteComment handles DELETE /comments/{id}.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	comment := s.authorizeComment(w, r)
	if comment == nil {
		return
	}

	if err := s.store.DeleteComment(r.Context(), comment.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	s.publish(r.Context(), events.TopicCommentDeleted, events.CommentDeleted{
		CommentID: comment.ID,
		NewsID:    comment.NewsID,
	})

	w.WriteHeader(http.StatusNoContent)
}
