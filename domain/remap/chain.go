package remap

import (
	"math"
	"strconv"
	"strings"
)

// Chain projects values through an ordered sequence of stages. It is built
// sequentially with AddStage and is read-only afterwards, so a built Chain
// may be shared by any number of goroutines.
type Chain struct {
	stages []Store
}

// NewChain creates a Chain with no stages. Projecting through an empty
// chain returns the input unchanged.
func NewChain() *Chain {
	return &Chain{}
}

// AddStage decodes one stage from interval specifications of the form
// "destination source length", finalizes it and appends it to the chain.
// On error the chain is left unchanged.
func (c *Chain) AddStage(specs []string) error {
	b := NewBuilder()
	for _, spec := range specs {
		iv, err := ParseInterval(spec)
		if err != nil {
			return err
		}
		b.AddInterval(iv.SourceStart, iv.SourceEnd, iv.DestinationStart)
	}
	c.stages = append(c.stages, b.Finalize())
	return nil
}

// AddMap is AddStage returning the chain so stages can be added fluently.
func (c *Chain) AddMap(specs []string) (*Chain, error) {
	if err := c.AddStage(specs); err != nil {
		return nil, err
	}
	return c, nil
}

// Project threads v through every stage in order. A stage that has no
// interval covering the running value leaves it unchanged.
func (c *Chain) Project(v uint64) uint64 {
	for _, stage := range c.stages {
		if iv, ok := stage.FindInterval(v); ok {
			v = iv.Map(v)
		}
	}
	return v
}

// Step records what one stage did to a value during Trace.
type Step struct {
	Input    uint64
	Output   uint64
	Interval Interval
	Matched  bool
}

// Trace projects v like Project and returns one Step per stage.
func (c *Chain) Trace(v uint64) []Step {
	steps := make([]Step, 0, len(c.stages))
	for _, stage := range c.stages {
		step := Step{Input: v, Output: v}
		if iv, ok := stage.FindInterval(v); ok {
			step.Interval, step.Matched = iv, true
			step.Output = iv.Map(v)
		}
		steps = append(steps, step)
		v = step.Output
	}
	return steps
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Stage returns the i-th stage.
func (c *Chain) Stage(i int) Store { return c.stages[i] }

// ParseInterval decodes "destination source length" into an Interval.
func ParseInterval(spec string) (Interval, error) {
	fields := strings.Fields(spec)
	if len(fields) != 3 {
		return Interval{}, NewParseError(spec, ErrFieldCount)
	}

	var nums [3]uint64
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Interval{}, NewParseError(spec, err)
		}
		nums[i] = n
	}

	dst, src, length := nums[0], nums[1], nums[2]
	if length == 0 {
		return Interval{}, NewParseError(spec, ErrZeroLength)
	}
	if src > math.MaxUint64-(length-1) || dst > math.MaxUint64-(length-1) {
		return Interval{}, NewParseError(spec, ErrOverflow)
	}
	return NewInterval(dst, src, length), nil
}
