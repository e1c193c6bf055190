// Package sync takes periodic JSONL backups of the content store and ships
// them to backup destinations.
package sync

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/gazette/internal/store"
)

// Backup is one snapshot of the content store, ready to ship.
type Backup struct {
	Data    []byte
	TakenAt time.Time
}

// Destination ships finished backups somewhere durable. Implementations may
// derive object names from the backup's TakenAt timestamp.
type Destination interface {
	Store(ctx context.Context, b *Backup) error
	// Name identifies the destination in logs.
	Name() string
}

// Scheduler takes a backup at a fixed interval and ships it to every
// destination. A failing destination does not stop the others.
type Scheduler struct {
	store    store.Store
	dests    []Destination
	interval time.Duration
	logger   *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler backing up the store to the given
// destinations at the specified interval.
func NewScheduler(s store.Store, interval time.Duration, logger *slog.Logger, dests ...Destination) *Scheduler {
	return &Scheduler{
		store:    s,
		dests:    dests,
		interval: interval,
		logger:   logger,
	}
}

// Start takes an immediate backup, then one per interval, until Stop.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.backupOnce(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.backupOnce(ctx)
			}
		}
	}()
}

// Stop cancels the scheduler and waits for an in-flight backup to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) backupOnce(ctx context.Context) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.store, &buf); err != nil {
		s.logger.Error("backup export failed", "err", err)
		return
	}
	b := &Backup{Data: buf.Bytes(), TakenAt: time.Now().UTC()}

	for _, dest := range s.dests {
		if err := dest.Store(ctx, b); err != nil {
			s.logger.Error("backup upload failed", "destination", dest.Name(), "err", err)
			continue
		}
		s.logger.Info("backup shipped", "destination", dest.Name(), "bytes", len(b.Data))
	}
}
