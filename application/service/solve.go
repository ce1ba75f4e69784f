package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/helixml/almanac/domain/almanac"
	"github.com/helixml/almanac/internal/log"
)

// Part selects which answer to compute.
type Part int

// Part values.
const (
	PartOne Part = 1
	PartTwo Part = 2
)

// AllParts lists every part in order.
var AllParts = []Part{PartOne, PartTwo}

// String returns the metric label for the part.
func (p Part) String() string {
	switch p {
	case PartOne:
		return "1"
	case PartTwo:
		return "2"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// Operation returns the name used in progress logs.
func (p Part) Operation() string {
	switch p {
	case PartOne:
		return "seed scan"
	default:
		return "seed range scan"
	}
}

// Valid reports whether p names a known part.
func (p Part) Valid() bool {
	return p == PartOne || p == PartTwo
}

// Answer is the outcome of one part.
type Answer struct {
	Solved    bool          `json:"solved" yaml:"solved"`
	Value     uint64        `json:"value" yaml:"value"`
	Projected uint64        `json:"projected" yaml:"projected"`
	Elapsed   time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// Result holds the answers of one solve run.
type Result struct {
	RunID string `json:"run_id" yaml:"run_id"`
	Part1 Answer `json:"part1" yaml:"part1"`
	Part2 Answer `json:"part2" yaml:"part2"`
}

// Answer returns the answer for p.
func (r Result) Answer(p Part) Answer {
	if p == PartTwo {
		return r.Part2
	}
	return r.Part1
}

// Solve computes the requested parts for a parsed almanac. With no parts
// given, every part is solved.
func (s *Solver) Solve(ctx context.Context, a almanac.Almanac, parts ...Part) (Result, error) {
	if len(parts) == 0 {
		parts = AllParts
	}

	ctx = log.EnsureRunID(ctx)
	result := Result{RunID: log.RunID(ctx)}
	logger := s.logger.With(log.ContextAttrs(ctx)...)

	for _, part := range parts {
		start := time.Now()
		var (
			answer Answer
			err    error
		)
		switch part {
		case PartOne:
			seeds := a.Seeds()
			answer.Value, err = s.LowestSeed(ctx, a.Chain(), seeds)
			answer.Projected = uint64(len(seeds))
		case PartTwo:
			var ranges []almanac.SeedRange
			ranges, err = almanac.SeedRanges(a.Seeds())
			if err == nil {
				answer.Value, err = s.LowestInRanges(ctx, a.Chain(), ranges)
				answer.Projected = totalLength(ranges)
			}
		default:
			err = fmt.Errorf("%w: %d", ErrUnknownPart, int(part))
		}
		if err != nil {
			return Result{}, fmt.Errorf("part %s: %w", part, err)
		}

		answer.Solved = true
		answer.Elapsed = time.Since(start)
		if part == PartOne {
			result.Part1 = answer
		} else {
			result.Part2 = answer
		}

		logger.Info("part solved",
			slog.String("part", part.String()),
			slog.Uint64("lowest", answer.Value),
			slog.Uint64("projected", answer.Projected),
			slog.Duration("elapsed", answer.Elapsed),
		)
	}
	return result, nil
}
