// Package service evaluates almanacs: the lowest projected seed (part 1) and
// the lowest projected value across seed ranges (part 2).
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/helixml/almanac/domain/almanac"
	"github.com/helixml/almanac/infrastructure/tracking"
	"github.com/helixml/almanac/internal/log"
)

// cancelCheckMask sets how often a range scan polls its context.
const cancelCheckMask = 1<<16 - 1

// Projector maps a value through a stage chain.
type Projector interface {
	Project(v uint64) uint64
}

// Recorder receives solver instrumentation.
type Recorder interface {
	AddProjected(n uint64)
	ObserveSolve(part string, elapsed time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) AddProjected(uint64)                       {}
func (nopRecorder) ObserveSolve(string, time.Duration, error) {}

// Solver evaluates parts 1 and 2 over a built chain. A Solver holds no
// per-run state and may be shared.
type Solver struct {
	workers        int
	chunkSize      uint64
	reportInterval time.Duration
	logger         *slog.Logger
	recorder       Recorder
}

// SolverOption configures a Solver.
type SolverOption func(*Solver)

// WithWorkers sets the number of concurrent range workers.
func WithWorkers(n int) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithChunkSize sets how many values one worker task scans.
func WithChunkSize(n uint64) SolverOption {
	return func(s *Solver) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithReportInterval sets how often part 2 logs progress. Zero disables
// periodic progress logs.
func WithReportInterval(d time.Duration) SolverOption {
	return func(s *Solver) { s.reportInterval = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the instrumentation sink.
func WithRecorder(r Recorder) SolverOption {
	return func(s *Solver) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewSolver creates a Solver using every CPU and 1Mi-value chunks unless
// configured otherwise.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		workers:   runtime.NumCPU(),
		chunkSize: 1 << 20,
		logger:    slog.Default(),
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the configured worker count.
func (s *Solver) Workers() int { return s.workers }

// ChunkSize returns the configured chunk size.
func (s *Solver) ChunkSize() uint64 { return s.chunkSize }

// LowestSeed projects every seed and returns the lowest result.
func (s *Solver) LowestSeed(ctx context.Context, p Projector, seeds []uint64) (low uint64, err error) {
	start := time.Now()
	defer func() { s.recorder.ObserveSolve(PartOne.String(), time.Since(start), err) }()

	if len(seeds) == 0 {
		return 0, ErrNoValues
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	low = math.MaxUint64
	for _, seed := range seeds {
		low = min(low, p.Project(seed))
	}
	s.recorder.AddProjected(uint64(len(seeds)))

	s.logger.With(log.ContextAttrs(ctx)...).Debug("lowest seed found",
		slog.Int("seeds", len(seeds)),
		slog.Uint64("lowest", low),
		slog.Duration("elapsed", time.Since(start)),
	)
	return low, nil
}

// LowestInRanges projects every value of every range and returns the
// lowest result. Ranges are cut into chunks and scanned by a bounded pool
// of workers; the answer does not depend on the worker count or chunk size.
// Every value is scanned; only cancellation of ctx ends the scan early, in
// which case the context error is returned.
func (s *Solver) LowestInRanges(ctx context.Context, p Projector, ranges []almanac.SeedRange) (low uint64, err error) {
	start := time.Now()
	defer func() { s.recorder.ObserveSolve(PartTwo.String(), time.Since(start), err) }()

	total := totalLength(ranges)
	if total == 0 {
		return 0, ErrNoValues
	}

	ctx = log.EnsureRunID(ctx)
	logger := s.logger.With(log.ContextAttrs(ctx)...)

	tracker := tracking.NewTracker(PartTwo.Operation(), total, s.logger)
	tracker.Subscribe(tracking.NewLoggingReporter(s.logger))
	stop := tracking.Watch(ctx, tracker, s.reportInterval)
	defer stop()

	logger.Info("scanning seed ranges",
		slog.Int("ranges", len(ranges)),
		slog.Uint64("values", total),
		slog.Int("workers", s.workers),
		slog.Uint64("chunk_size", s.chunkSize),
	)

	var (
		mu   sync.Mutex
		best uint64 = math.MaxUint64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

dispatch:
	for _, r := range ranges {
		for chunk := range r.Chunks(s.chunkSize) {
			if gctx.Err() != nil {
				break dispatch
			}
			g.Go(func() error {
				chunkLow, err := scanRange(gctx, p, chunk)
				if err != nil {
					return err
				}
				tracker.Add(chunk.Length)
				s.recorder.AddProjected(chunk.Length)

				mu.Lock()
				best = min(best, chunkLow)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("scan seed ranges: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("scan seed ranges: %w", err)
	}

	stop()
	tracker.Complete(ctx)
	return best, nil
}

// scanRange returns the lowest projection of the values in r.
func scanRange(ctx context.Context, p Projector, r almanac.SeedRange) (uint64, error) {
	low := uint64(math.MaxUint64)
	v := r.Start
	for i := uint64(0); i < r.Length; i++ {
		if i&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		low = min(low, p.Project(v))
		v++
	}
	return low, nil
}

// totalLength sums the range lengths, saturating at MaxUint64.
func totalLength(ranges []almanac.SeedRange) uint64 {
	var total uint64
	for _, r := range ranges {
		if r.Length > math.MaxUint64-total {
			return math.MaxUint64
		}
		total += r.Length
	}
	return total
}
