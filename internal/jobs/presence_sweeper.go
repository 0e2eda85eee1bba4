package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"eventcompanion/internal/domain"
)

// sweepTimeout bounds a single sweeper run.
const sweepTimeout = 30 * time.Second

// PresenceSweeper periodically removes presence records whose last report is
// older than maxAge. The store's TTL already expires records on its own; the
// sweeper keeps scan results clean between expiries and logs what it removed.
type PresenceSweeper struct {
	logger *slog.Logger
	store  domain.PresenceStore
	maxAge time.Duration
	cron   *cron.Cron
}

// NewPresenceSweeper creates a sweeper that deletes records older than maxAge.
func NewPresenceSweeper(logger *slog.Logger, store domain.PresenceStore, maxAge time.Duration) *PresenceSweeper {
	return &PresenceSweeper{
		logger: logger,
		store:  store,
		maxAge: maxAge,
		cron:   cron.New(),
	}
}

// Start schedules the sweep on the given cron spec (e.g. "@every 5m") and
// starts the scheduler.
func (s *PresenceSweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *PresenceSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *PresenceSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := time.Now().Add(-s.maxAge)
	removed, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("presence sweep failed", "err", err)
		return
	}
	if removed > 0 {
		s.logger.Info("presence sweep removed stale records", "removed", removed, "cutoff", cutoff)
	}
}
