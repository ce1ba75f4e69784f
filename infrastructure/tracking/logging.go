package tracking

import (
	"context"
	"log/slog"

	"github.com/helixml/almanac/internal/log"
)

// LoggingReporter implements Reporter by logging snapshots.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	return &LoggingReporter{
		logger: logger,
	}
}

// OnProgress logs the snapshot, with the run's IDs from ctx.
func (r *LoggingReporter) OnProgress(ctx context.Context, s Snapshot) error {
	msg := s.Operation + " in progress"
	if s.Finished {
		msg = s.Operation + " finished"
	}
	r.logger.With(log.ContextAttrs(ctx)...).Info(msg,
		slog.Uint64("done", s.Done),
		slog.Uint64("total", s.Total),
		slog.Float64("completion_percent", s.CompletionPercent()),
		slog.Float64("values_per_second", s.Rate()),
		slog.Duration("elapsed", s.Elapsed),
	)
	return nil
}
