package events

import (
	"context"

	"github.com/alfredjeanlab/gazette/internal/model"
)

// Event topic constants
const (
	TopicNewsCreated = "gazette.news.created"

	TopicCommentCreated = "gazette.comment.created"
	TopicCommentUpdated = "gazette.comment.updated"
	TopicCommentDeleted = "gazette.comment.deleted"

	TopicNoteCreated = "gazette.note.created"
	TopicNoteUpdated = "gazette.note.updated"
	TopicNoteDeleted = "gazette.note.deleted"

	TopicUserSignedUp = "gazette.user.signed_up"
)

// Event types

type NewsCreated struct {
	News *model.News `json:"news"`
}

type CommentCreated struct {
	Comment *model.Comment `json:"comment"`
}

type CommentUpdated struct {
	Comment *model.Comment `json:"comment"`
}

type CommentDeleted struct {
	CommentID int64 `json:"comment_id"`
	NewsID    int64 `json:"news_id"`
}

type NoteCreated struct {
	Note *model.Note `json:"note"`
}

type NoteUpdated struct {
	Note *model.Note `json:"note"`
}

type NoteDeleted struct {
	NoteID int64  `json:"note_id"`
	Slug   string `json:"slug"`
}

type UserSignedUp struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
