package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gosimple/slug"

	"github.com/alfredjeanlab/gazette/internal/events"
	"github.com/alfredjeanlab/gazette/internal/metrics"
	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store"
)

// notesDonePath is where successful note mutations redirect.
const notesDonePath = "/notes/done"

type noteInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
}

// handleListNotes handles GET /notes. The listing only ever contains the
// caller's own notes.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListNotesByAuthor(r.Context(), userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}

	if notes == nil {
		notes = []*model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// handleCreateNote handles POST /notes. An empty slug is derived from the
// title by transliterating slugification. On success the client is sent to
// the confirmation page.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var in noteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user := userFrom(r)
	note := &model.Note{
		Title:    in.Title,
		Text:     in.Text,
		Slug:     in.Slug,
		AuthorID: user.ID,
		Author:   user.Username,
	}
	if note.Slug == "" {
		note.Slug = slug.Make(note.Title)
	}
	if err := model.ValidateNote(note); err != nil {
		writeValidationError(w, err)
		return
	}

	// Pre-check the slug so the common collision gets a field error without
	// consuming a sequence value; the unique index still backstops races.
	taken, err := s.store.SlugTaken(r.Context(), note.Slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}
	if taken {
		writeFieldErrors(w, map[string]string{"slug": note.Slug + model.SlugWarning})
		return
	}

	if err := s.store.CreateNote(r.Context(), note); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeFieldErrors(w, map[string]string{"slug": note.Slug + model.SlugWarning})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	metrics.NotesCreated.Inc()
	s.publish(r.Context(), events.TopicNoteCreated, events.NoteCreated{Note: note})

	http.Redirect(w, r, notesDonePath, http.StatusFound)
}

// handleNotesDone handles GET /notes/done, the post-mutation confirmation page.
func (s *Server) handleNotesDone(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "done"})
}

// authorizeNote loads a note by slug and verifies the caller owns it.
// Notes belonging to someone else are reported as missing, not forbidden.
func (s *Server) authorizeNote(w http.ResponseWriter, r *http.Request) *model.Note {
	note, err := s.store.GetNoteBySlug(r.Context(), r.PathValue("slug"))
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "note not found")
		return nil
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get note")
		return nil
	}

	if note.AuthorID != userFrom(r).ID {
		writeError(w, http.StatusNotFound, "note not found")
		return nil
	}
	return note
}

// handleGetNote handles GET /notes/{slug}.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note := s.authorizeNote(w, r)
	if note == nil {
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleUpdateNote handles PATCH /notes/{slug}. Omitted fields keep their
// current values; an explicitly empty slug is re-derived from the title.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	note := s.authorizeNote(w, r)
	if note == nil {
		return
	}

	var in struct {
		Title *string `json:"title"`
		Text  *string `json:"text"`
		Slug  *string `json:"slug"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Text != nil {
		note.Text = *in.Text
	}
	if in.Slug != nil {
		note.Slug = *in.Slug
	}
	if note.Slug == "" {
		note.Slug = slug.Make(note.Title)
	}
	if err := model.ValidateNote(note); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.store.UpdateNote(r.Context(), note); err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			writeFieldErrors(w, map[string]string{"slug": note.Slug + model.SlugWarning})
		case errors.Is(err, sql.ErrNoRows):
			writeError(w, http.StatusNotFound, "note not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update note")
		}
		return
	}

	s.publish(r.Context(), events.TopicNoteUpdated, events.NoteUpdated{Note: note})

	http.Redirect(w, r, notesDonePath, http.StatusFound)
}

// handleDeleteNote handles DELETE /notes/{slug}.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	note := s.authorizeNote(w, r)
	if note == nil {
		return
	}

	if err := s.store.DeleteNote(r.Context(), note.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "note not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	s.publish(r.Context(), events.TopicNoteDeleted, events.NoteDeleted{
		NoteID: note.ID,
		Slug:   note.Slug,
	})

	http.Redirect(w, r, notesDonePath, http.StatusFound)
}
