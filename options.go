package almanac

import (
	"io"
	"log/slog"
	"time"

	"github.com/helixml/almanac/infrastructure/metrics"
	"github.com/helixml/almanac/infrastructure/source"
	"github.com/helixml/almanac/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	logger         *slog.Logger
	metrics        *metrics.Metrics
	workerCount    int
	chunkSize      uint64
	reportInterval time.Duration
	s3             config.S3Config
	sourceOpts     []source.Option
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	defaults := config.NewAppConfig()
	return &clientConfig{
		workerCount:    defaults.WorkerCount(),
		chunkSize:      defaults.ChunkSize(),
		reportInterval: defaults.Reporting().LogTimeInterval(),
		s3:             defaults.S3(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithConfig applies the solver and input settings of an AppConfig.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) {
		c.workerCount = cfg.WorkerCount()
		c.chunkSize = cfg.ChunkSize()
		c.reportInterval = cfg.Reporting().LogTimeInterval()
		c.s3 = cfg.S3()
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = l }
}

// WithMetrics sets the metrics sink. Without it the client creates its own.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *clientConfig) { c.metrics = m }
}

// WithWorkerCount sets the number of part 2 workers.
func WithWorkerCount(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithChunkSize sets how many values one part 2 task scans.
func WithChunkSize(n uint64) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithReportInterval sets how often part 2 progress is logged.
func WithReportInterval(d time.Duration) Option {
	return func(c *clientConfig) { c.reportInterval = d }
}

// WithS3Config sets how s3:// inputs are fetched.
func WithS3Config(s config.S3Config) Option {
	return func(c *clientConfig) { c.s3 = s }
}

// WithStdin replaces standard input for the "-" location.
func WithStdin(r io.Reader) Option {
	return func(c *clientConfig) {
		c.sourceOpts = append(c.sourceOpts, source.WithStdin(r))
	}
}

// WithSourceOptions passes options to the input opener.
func WithSourceOptions(opts ...source.Option) Option {
	return func(c *clientConfig) {
		c.sourceOpts = append(c.sourceOpts, opts...)
	}
}
