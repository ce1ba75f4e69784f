// Package tracking reports the progress of long-running range scans.
package tracking

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Reporter receives progress snapshots.
type Reporter interface {
	OnProgress(ctx context.Context, snapshot Snapshot) error
}

// Snapshot is a point-in-time view of a Tracker.
type Snapshot struct {
	Operation string
	Done      uint64
	Total     uint64
	Elapsed   time.Duration
	Finished  bool
}

// CompletionPercent returns the share of work done, in [0, 100].
func (s Snapshot) CompletionPercent() float64 {
	if s.Total == 0 {
		if s.Finished {
			return 100
		}
		return 0
	}
	return float64(s.Done) / float64(s.Total) * 100
}

// Rate returns the values processed per second.
func (s Snapshot) Rate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Done) / s.Elapsed.Seconds()
}

// Tracker counts processed values for one operation. Add is safe to call
// from many goroutines.
type Tracker struct {
	operation   string
	total       uint64
	done        atomic.Uint64
	started     time.Time
	finished    atomic.Bool
	subscribers []Reporter
	logger      *slog.Logger
	mu          sync.RWMutex
}

// NewTracker creates a Tracker expecting total values.
func NewTracker(operation string, total uint64, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		operation: operation,
		total:     total,
		started:   time.Now(),
		logger:    logger,
	}
}

// Subscribe adds a reporter to receive snapshots.
func (t *Tracker) Subscribe(reporter Reporter) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, reporter)
}

// Add records n more processed values.
func (t *Tracker) Add(n uint64) {
	t.done.Add(n)
}

// Snapshot returns the current progress.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Operation: t.operation,
		Done:      t.done.Load(),
		Total:     t.total,
		Elapsed:   time.Since(t.started),
		Finished:  t.finished.Load(),
	}
}

// Notify sends the current snapshot to every subscriber.
func (t *Tracker) Notify(ctx context.Context) {
	t.notifySubscribers(ctx, t.Snapshot())
}

// Complete marks the operation finished and sends a final snapshot.
func (t *Tracker) Complete(ctx context.Context) {
	t.finished.Store(true)
	t.Notify(ctx)
}

func (t *Tracker) notifySubscribers(ctx context.Context, snapshot Snapshot) {
	t.mu.RLock()
	subscribers := make([]Reporter, len(t.subscribers))
	copy(subscribers, t.subscribers)
	t.mu.RUnlock()

	for _, subscriber := range subscribers {
		if err := subscriber.OnProgress(ctx, snapshot); err != nil {
			t.logger.Error("failed to notify subscriber",
				slog.String("operation", t.operation),
				slog.String("error", err.Error()),
			)
		}
	}
}
