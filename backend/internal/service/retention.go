package service

import (
	"context"
	"sync"
	"time"

	"github.com/admissible-dev/admissible-demo/shared/logger"
	"github.com/admissible-dev/admissible-demo/shared/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var activitySwept = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: metrics.Namespace,
	Name:      "activity_events_swept_total",
	Help:      "Activity events removed by the retention sweeper",
})

type RetentionStorage interface {
	DeleteActivityBefore(ctx context.Context, before time.Time) (int64, error)
}

// SweepStats describes the last sweep.
type SweepStats struct {
	RunAt    time.Time
	Cutoff   time.Time
	Deleted  int64
	Duration time.Duration
}

// ActivitySweeper deletes activity events older than the retention period.
type ActivitySweeper struct {
	storage   RetentionStorage
	retention time.Duration
	now       func() time.Time

	mu    sync.Mutex
	stats SweepStats
}

func NewActivitySweeper(storage RetentionStorage, retention time.Duration) *ActivitySweeper {
	return &ActivitySweeper{
		storage:   storage,
		retention: retention,
		now:       time.Now,
	}
}

// RunCleanup executes a single sweep.
func (s *ActivitySweeper) RunCleanup(ctx context.Context) (SweepStats, error) {
	start := s.now()
	stats := SweepStats{RunAt: start, Cutoff: start.Add(-s.retention)}

	deleted, err := s.storage.DeleteActivityBefore(ctx, stats.Cutoff)
	if err != nil {
		return stats, err
	}
	stats.Deleted = deleted
	stats.Duration = time.Since(start)
	activitySwept.Add(float64(deleted))

	s.mu.Lock()
	s.stats = stats
	s.mu.Unlock()
	return stats, nil
}

func (s *ActivitySweeper) LastStats() SweepStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Run sweeps every interval until ctx is cancelled. A failed sweep is logged
// and retried on the next tick.
func (s *ActivitySweeper) Run(ctx context.Context, interval time.Duration) error {
	log := logger.Component("activity-sweeper")
	log.Info("started", "interval", interval, "retention", s.retention)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stats, err := s.RunCleanup(ctx)
			if err != nil {
				log.Error("sweep failed", "error", err)
				continue
			}
			log.Debug("sweep completed", "deleted", stats.Deleted, "cutoff", stats.Cutoff, "duration", stats.Duration)
		case <-ctx.Done():
			log.Info("shutting down")
			return ctx.Err()
		}
	}
}
