package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/gazette/internal/model"
	"github.com/alfredjeanlab/gazette/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version   string    `json:"version"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	NewsCount int       `json:"news_count"`
	NoteCount int       `json:"note_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all news and notes from the store as JSONL to w.
// News items carry their embedded comment threads; both sections come out
// in stable store order.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	// Fetch all news, newest first (no limit).
	news, _, err := s.ListNews(ctx, model.NewsFilter{})
	if err != nil {
		return fmt.Errorf("list news: %w", err)
	}

	// Attach the comment thread to each item.
	for _, n := range news {
		comments, err := s.ListComments(ctx, n.ID)
		if err != nil {
			return fmt.Errorf("list comments for %d: %w", n.ID, err)
		}
		n.Comments = comments
	}

	notes, err := s.ListAllNotes(ctx)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	// Write header.
	if err := enc.Encode(header{
		Version:   "1",
		Type:      "header",
		Timestamp: time.Now().UTC(),
		NewsCount: len(news),
		NoteCount: len(notes),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, n := range news {
		if err := enc.Encode(record{Type: "news", Data: n}); err != nil {
			return fmt.Errorf("encode news %d: %w", n.ID, err)
		}
	}

	for _, n := range notes {
		if err := enc.Encode(record{Type: "note", Data: n}); err != nil {
			return fmt.Errorf("encode note %s: %w", n.Slug, err)
		}
	}

	return nil
}
