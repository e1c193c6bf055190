package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/alfredjeanlab/gazette/internal/model"
)

func TestCreateNote(t *testing.T) {
	_, ms, handler := newTestServer()
	user := addUser(t, ms, "alice")
	cookie := signIn(t, ms, user)

	rec := doJSON(t, handler, "POST", "/notes",
		map[string]string{"title": "Shopping list", "text": "Milk, eggs", "slug": "shopping-list"}, cookie)
	requireStatus(t, rec, http.StatusFound)
	if got := rec.Header().Get("Location"); got != notesDonePath {
		t.Fatalf("expected redirect to %q, got %q", notesDonePath, got)
	}

	if len(ms.notes) != 1 {
		t.Fatalf("expected 1 stored note, got %d", len(ms.notes))
	}
	note, err := ms.GetNoteBySlug(context.Background(), "shopping-list")
	if err != nil {
		t.Fatalf("note not stored: %v", err)
	}
	if note.Title != "Shopping list" || note.Text != "Milk, eggs" || note.AuthorID != user.ID {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestCreateNoteAnonymous(t *testing.T) {
	_, ms, handler := newTestServer()

	rec := doJSON(t, handler, "POST", "/notes",
		map[string]string{"title": "Secret", "text": "Text", "slug": "secret"}, nil)
	requireStatus(t, rec, http.StatusFound)

	if len(ms.notes) != 0 {
		t.Fatalf("expected no stored notes, got %d", len(ms.notes))
	}
}

func TestCreateNoteDuplicateSlug(t *testing.T) {
	_, ms, handler := newTestServer()
	user := addUser(t, ms, "alice")
	addNote(t, ms, user, "First", "my-slug")
	cookie := signIn(t, ms, user)

	rec := doJSON(t, handler, "POST", "/notes",
		map[string]string{"title": "Second", "text": "Text", "slug": "my-slug"}, cookie)
	requireStatus(t, rec, http.StatusBadRequest)

	fields := fieldErrorsFrom(t, rec)
	want := "my-slug" + model.SlugWarning
	if fields["slug"] != want {
		t.Fatalf("expected slug error %q, got %v", want, fields)
	}
	if len(ms.notes) != 1 {
		t.Fatalf("expected note count to stay 1, got %d", len(ms.notes))
	}
}

func TestCreateNoteSlugDerivedFromTitle(t *testing.T) {
	_, ms, handler := newTestServer()
	user := addUser(t, ms, "alice")
	cookie := signIn(t, ms, user)

	rec := doJSON(t, handler, "POST", "/notes",
		map[string]string{"title": "Заголовок", "text": "Текст заметки"}, cookie)
	requireStatus(t, rec, http.StatusFound)

	note, err := ms.GetNoteBySlug(context.Background(), "zagolovok")
	if err != nil {
		t.Fatalf("expected transliterated slug zagolovok: %v", err)
	}
	if note.Title != "Заголовок" {
		t.Fatalf("got title=%q", note.Title)
	}
}

func TestCreateNoteMissingTitle(t *testing.T) {
	_, ms, handler := newTestServer()
	user := addUser(t, ms, "alice")
	cookie := signIn(t, ms, user)

	rec := doJSON(t, handler, "POST", "/notes",
		map[string]string{"text": "Text without title"}, cookie)
	requireStatus(t, rec, http.StatusBadRequest)

	fields := fieldErrorsFrom(t, rec)
	if _, ok := fields["title"]; !ok {
		t.Fatalf("expected error on title, got %v", fields)
	}
	if len(ms.notes) != 0 {
		t.Fatalf("expected no stored notes, got %d", len(ms.notes))
	}
}

func TestListNotesOnlyOwn(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	bob := addUser(t, ms, "bob")
	addNote(t, ms, alice, "Alice note", "alice-note")
	addNote(t, ms, bob, "Bob note", "bob-note")

	rec := doJSON(t, handler, "GET", "/notes", nil, signIn(t, ms, alice))
	requireStatus(t, rec, http.StatusOK)

	var body struct {
		Notes []*model.Note `json:"notes"`
	}
	decodeJSON(t, rec, &body)
	if len(body.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(body.Notes))
	}
	if body.Notes[0].Slug != "alice-note" {
		t.Fatalf("expected alice-note, got %q", body.Notes[0].Slug)
	}
}

func TestGetNoteOwnerOnly(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	bob := addUser(t, ms, "bob")
	addNote(t, ms, alice, "Alice note", "alice-note")

	rec := doJSON(t, handler, "GET", "/notes/alice-note", nil, signIn(t, ms, alice))
	requireStatus(t, rec, http.StatusOK)

	rec = doJSON(t, handler, "GET", "/notes/alice-note", nil, signIn(t, ms, bob))
	requireStatus(t, rec, http.StatusNotFound)
}

func TestUpdateNoteOwner(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	note := addNote(t, ms, alice, "Draft", "draft")
	cookie := signIn(t, ms, alice)

	rec := doJSON(t, handler, "PATCH", "/notes/draft",
		map[string]string{"title": "Final", "text": "Done", "slug": "final"}, cookie)
	requireStatus(t, rec, http.StatusFound)
	if got := rec.Header().Get("Location"); got != notesDonePath {
		t.Fatalf("expected redirect to %q, got %q", notesDonePath, got)
	}

	stored := ms.notes[note.ID]
	if stored.Title != "Final" || stored.Text != "Done" || stored.Slug != "final" {
		t.Fatalf("unexpected note after update: %+v", stored)
	}
}

func TestUpdateNotePartial(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	note := addNote(t, ms, alice, "Draft", "draft")
	cookie := signIn(t, ms, alice)

	rec := doJSON(t, handler, "PATCH", "/notes/draft",
		map[string]string{"text": "Only the text changes"}, cookie)
	requireStatus(t, rec, http.StatusFound)

	stored := ms.notes[note.ID]
	if stored.Title != "Draft" || stored.Slug != "draft" {
		t.Fatalf("expected title and slug unchanged, got %+v", stored)
	}
	if stored.Text != "Only the text changes" {
		t.Fatalf("expected text updated, got %q", stored.Text)
	}
}

func TestUpdateNoteNonOwner(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	bob := addUser(t, ms, "bob")
	note := addNote(t, ms, alice, "Draft", "draft")

	rec := doJSON(t, handler, "PATCH", "/notes/draft",
		map[string]string{"title": "Stolen"}, signIn(t, ms, bob))
	requireStatus(t, rec, http.StatusNotFound)

	if ms.notes[note.ID].Title != "Draft" {
		t.Fatalf("expected title unchanged, got %q", ms.notes[note.ID].Title)
	}
}

func TestUpdateNoteDuplicateSlug(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	addNote(t, ms, alice, "First", "first")
	addNote(t, ms, alice, "Second", "second")
	cookie := signIn(t, ms, alice)

	rec := doJSON(t, handler, "PATCH", "/notes/second",
		map[string]string{"slug": "first"}, cookie)
	requireStatus(t, rec, http.StatusBadRequest)

	fields := fieldErrorsFrom(t, rec)
	want := "first" + model.SlugWarning
	if fields["slug"] != want {
		t.Fatalf("expected slug error %q, got %v", want, fields)
	}
}

func TestDeleteNoteOwner(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	addNote(t, ms, alice, "Doomed", "doomed")
	cookie := signIn(t, ms, alice)

	rec := doJSON(t, handler, "DELETE", "/notes/doomed", nil, cookie)
	requireStatus(t, rec, http.StatusFound)
	if got := rec.Header().Get("Location"); got != notesDonePath {
		t.Fatalf("expected redirect to %q, got %q", notesDonePath, got)
	}

	if len(ms.notes) != 0 {
		t.Fatalf("expected note removed, got %d", len(ms.notes))
	}
}

func TestDeleteNoteNonOwner(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")
	bob := addUser(t, ms, "bob")
	addNote(t, ms, alice, "Keep", "keep")

	rec := doJSON(t, handler, "DELETE", "/notes/keep", nil, signIn(t, ms, bob))
	requireStatus(t, rec, http.StatusNotFound)

	if len(ms.notes) != 1 {
		t.Fatalf("expected note to survive, got %d", len(ms.notes))
	}
}

func TestNotesDonePage(t *testing.T) {
	_, ms, handler := newTestServer()
	alice := addUser(t, ms, "alice")

	rec := doJSON(t, handler, "GET", "/notes/done", nil, signIn(t, ms, alice))
	requireStatus(t, rec, http.StatusOK)

	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["page"] != "done" {
		t.Fatalf("expected done page, got %v", body)
	}
}
