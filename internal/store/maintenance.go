package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// StartMaintenance runs periodic housekeeping until ctx is cancelled.
// Intended to run in its own goroutine.
func (s *Store) StartMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Maintain(ctx)
		}
	}
}

// Maintain performs one housekeeping pass: expired sessions are purged
// and Badger's value log is garbage collected. Failures are logged,
// never fatal; the next pass retries.
func (s *Store) Maintain(ctx context.Context) {
	if _, err := s.DeleteExpiredSessions(ctx); err != nil {
		if s.logger != nil {
			s.logger.Warn("expired session cleanup failed", "error", err)
		}
	}

	// ErrNoRewrite means there was nothing left to reclaim.
	for {
		err := s.db.RunValueLogGC(0.5)
		if err == nil {
			continue
		}
		if !errors.Is(err, badger.ErrNoRewrite) && s.logger != nil {
			s.logger.Warn("value log GC failed", "error", err)
		}
		return
	}
}
