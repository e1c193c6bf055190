package store

import (
	"context"
	"errors"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint (note slugs, usernames).
var ErrDuplicate = errors.New("duplicate value")

// Store defines the persistence interface for the service.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Sessions
	CreateSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID int64) error

	// News
	CreateNews(ctx context.Context, news *model.News) error
	GetNews(ctx context.Context, id int64) (*model.News, error)
	ListNews(ctx context.Context, filter model.NewsFilter) ([]*model.News, int, error) // returns items, total count, error

	// Comments
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	ListComments(ctx context.Context, newsID int64) ([]*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id int64) error

	// Notes
	CreateNote(ctx context.Context, note *model.Note) error
	GetNoteBySlug(ctx context.Context, slug string) (*model.Note, error)
	ListNotesByAuthor(ctx context.Context, authorID int64) ([]*model.Note, error)
	ListAllNotes(ctx context.Context) ([]*model.Note, error)
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id int64) error
	SlugTaken(ctx context.Context, slug string) (bool, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
