// Package almanac is the library entry point for solving seed almanacs.
//
//	client := almanac.New(almanac.WithWorkerCount(8))
//	doc, err := client.Load(ctx, "input.txt")
//	result, err := client.Solve(ctx, doc)
package almanac

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/helixml/almanac/application/service"
	"github.com/helixml/almanac/domain/almanac"
	"github.com/helixml/almanac/domain/remap"
	"github.com/helixml/almanac/infrastructure/metrics"
	"github.com/helixml/almanac/infrastructure/source"
)

// ErrClientClosed is returned when using a closed client.
var ErrClientClosed = errors.New("almanac: client is closed")

// Document is a decoded almanac: seeds plus the stage chain.
type Document = almanac.Almanac

// Client loads almanacs and solves them.
type Client struct {
	solver  *service.Solver
	opener  *source.Opener
	metrics *metrics.Metrics
	logger  *slog.Logger
	closed  atomic.Bool
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	m := cfg.metrics
	if m == nil {
		m = metrics.New()
	}

	return &Client{
		solver: service.NewSolver(
			service.WithWorkers(cfg.workerCount),
			service.WithChunkSize(cfg.chunkSize),
			service.WithReportInterval(cfg.reportInterval),
			service.WithLogger(logger),
			service.WithRecorder(m),
		),
		opener:  source.NewOpener(cfg.s3, cfg.sourceOpts...),
		metrics: m,
		logger:  logger,
	}
}

// Load reads and decodes the almanac at location: a file path, "-" for
// standard input, or s3://bucket/key.
func (c *Client) Load(ctx context.Context, location string) (Document, error) {
	if c.closed.Load() {
		return Document{}, ErrClientClosed
	}
	rc, err := c.opener.Open(ctx, location)
	if err != nil {
		return Document{}, err
	}
	defer func() { _ = rc.Close() }()

	return almanac.Read(rc)
}

// Read decodes an almanac from r.
func (c *Client) Read(r io.Reader) (Document, error) {
	return almanac.Read(r)
}

// ParseString decodes an almanac from text.
func (c *Client) ParseString(text string) (Document, error) {
	return almanac.Read(strings.NewReader(text))
}

// Solve computes the requested parts, every part when none are given.
func (c *Client) Solve(ctx context.Context, a Document, parts ...service.Part) (service.Result, error) {
	if c.closed.Load() {
		return service.Result{}, ErrClientClosed
	}
	return c.solver.Solve(ctx, a, parts...)
}

// Projection is the path of one value through an almanac's stages.
type Projection struct {
	Value  uint64
	Result uint64
	Stages []StageStep
}

// StageStep is what one named stage did to the value.
type StageStep struct {
	Stage string
	remap.Step
}

// Project traces each value through the almanac's stages.
func (c *Client) Project(a Document, values ...uint64) []Projection {
	names := a.StageNames()
	chain := a.Chain()

	out := make([]Projection, 0, len(values))
	for _, v := range values {
		steps := chain.Trace(v)
		p := Projection{Value: v, Result: v, Stages: make([]StageStep, len(steps))}
		for i, step := range steps {
			p.Stages[i] = StageStep{Stage: names[i], Step: step}
			p.Result = step.Output
		}
		out = append(out, p)
	}
	c.metrics.AddProjected(uint64(len(values)))
	return out
}

// Workers returns the number of part 2 workers.
func (c *Client) Workers() int { return c.solver.Workers() }

// ChunkSize returns the part 2 chunk size.
func (c *Client) ChunkSize() uint64 { return c.solver.ChunkSize() }

// Metrics returns the client's metrics.
func (c *Client) Metrics() *metrics.Metrics { return c.metrics }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Close marks the client closed. Solves already running are not
// interrupted; cancel their context for that.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	c.logger.Debug("almanac client closed")
	return nil
}
