// Package server implements the HTTP API: public news reading, comment
// threads with moderation, and private per-user notes.
package server

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/gazette/internal/events"
	"github.com/alfredjeanlab/gazette/internal/moderation"
	"github.com/alfredjeanlab/gazette/internal/store"
)

// HomePageSize is the maximum number of news items shown on the home page.
const HomePageSize = 10

// Server holds the service dependencies shared by all HTTP handlers.
type Server struct {
	store      store.Store
	publisher  events.Publisher
	moderation *moderation.Filter
}

// New returns a Server backed by the given store, publisher, and word filter.
func New(s store.Store, p events.Publisher, f *moderation.Filter) *Server {
	return &Server{
		store:      s,
		publisher:  p,
		moderation: f,
	}
}

// publish emits an event; failures are logged but never block the caller.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
