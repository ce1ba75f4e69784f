// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 8080
	DefaultLogLevel          = "INFO"
	DefaultWorkerCount       = 0 // 0 means runtime.NumCPU()
	DefaultChunkSize         = 1 << 20
	DefaultReportingInterval = 5 * time.Second
	DefaultCacheTTL          = 10 * time.Minute
	DefaultRequestTimeout    = 5 * time.Minute
	DefaultS3Region          = "us-east-1"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ReportingConfig configures progress reporting.
type ReportingConfig struct {
	logTimeInterval time.Duration
}

// NewReportingConfig creates a new ReportingConfig with defaults.
func NewReportingConfig() ReportingConfig {
	return ReportingConfig{
		logTimeInterval: DefaultReportingInterval,
	}
}

// LogTimeInterval returns the time interval for logging progress.
func (r ReportingConfig) LogTimeInterval() time.Duration {
	return r.logTimeInterval
}

// WithLogTimeInterval returns a new config with the specified interval.
func (r ReportingConfig) WithLogTimeInterval(d time.Duration) ReportingConfig {
	r.logTimeInterval = d
	return r
}

// S3Config configures access to almanac inputs stored in S3.
type S3Config struct {
	region    string
	endpoint  string
	pathStyle bool
}

// NewS3Config creates a new S3Config with defaults.
func NewS3Config() S3Config {
	return S3Config{region: DefaultS3Region}
}

// Region returns the AWS region.
func (s S3Config) Region() string { return s.region }

// Endpoint returns the custom endpoint, empty for AWS.
func (s S3Config) Endpoint() string { return s.endpoint }

// PathStyle returns whether path-style addressing is used.
func (s S3Config) PathStyle() bool { return s.pathStyle }

// WithRegion returns a new config with the specified region.
func (s S3Config) WithRegion(region string) S3Config {
	s.region = region
	return s
}

// WithEndpoint returns a new config with the specified endpoint.
func (s S3Config) WithEndpoint(endpoint string) S3Config {
	s.endpoint = endpoint
	return s
}

// WithPathStyle returns a new config with path-style addressing set.
func (s S3Config) WithPathStyle(pathStyle bool) S3Config {
	s.pathStyle = pathStyle
	return s
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host               string
	port               int
	logLevel           string
	logFormat          LogFormat
	workerCount        int
	chunkSize          uint64
	reporting          ReportingConfig
	cacheTTL           time.Duration
	requestTimeout     time.Duration
	corsAllowedOrigins []string
	s3                 S3Config
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:               DefaultHost,
		port:               DefaultPort,
		logLevel:           DefaultLogLevel,
		logFormat:          LogFormatPretty,
		workerCount:        DefaultWorkerCount,
		chunkSize:          DefaultChunkSize,
		reporting:          NewReportingConfig(),
		cacheTTL:           DefaultCacheTTL,
		requestTimeout:     DefaultRequestTimeout,
		corsAllowedOrigins: []string{},
		s3:                 NewS3Config(),
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WorkerCount returns the number of range workers. Zero resolves to the
// number of CPUs.
func (c AppConfig) WorkerCount() int {
	if c.workerCount <= 0 {
		return runtime.NumCPU()
	}
	return c.workerCount
}

// ChunkSize returns how many values one range worker task covers.
func (c AppConfig) ChunkSize() uint64 { return c.chunkSize }

// Reporting returns the reporting config.
func (c AppConfig) Reporting() ReportingConfig { return c.reporting }

// CacheTTL returns how long the API keeps solved results.
func (c AppConfig) CacheTTL() time.Duration { return c.cacheTTL }

// RequestTimeout returns the deadline for one API request.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// CORSAllowedOrigins returns the origins allowed by the API.
func (c AppConfig) CORSAllowedOrigins() []string {
	origins := make([]string, len(c.corsAllowedOrigins))
	copy(origins, c.corsAllowedOrigins)
	return origins
}

// S3 returns the S3 input config.
func (c AppConfig) S3() S3Config { return c.s3 }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithWorkerCount sets the number of range workers.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithChunkSize sets the number of values per worker task.
func WithChunkSize(n uint64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithReportingConfig sets the reporting config.
func WithReportingConfig(r ReportingConfig) AppConfigOption {
	return func(c *AppConfig) { c.reporting = r }
}

// WithCacheTTL sets the API result cache lifetime.
func WithCacheTTL(d time.Duration) AppConfigOption {
	return func(c *AppConfig) { c.cacheTTL = d }
}

// WithRequestTimeout sets the API request deadline.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithCORSAllowedOrigins sets the allowed CORS origins.
func WithCORSAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsAllowedOrigins = make([]string, len(origins))
		copy(c.corsAllowedOrigins, origins)
	}
}

// WithS3Config sets the S3 input config.
func WithS3Config(s S3Config) AppConfigOption {
	return func(c *AppConfig) { c.s3 = s }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("log_level", c.logLevel),
		slog.Int("workers", c.WorkerCount()),
		slog.Uint64("chunk_size", c.chunkSize),
		slog.Duration("report_interval", c.reporting.LogTimeInterval()),
		slog.Duration("cache_ttl", c.cacheTTL),
		slog.Duration("request_timeout", c.requestTimeout),
		slog.String("s3_region", c.s3.Region()),
		slog.Bool("s3_custom_endpoint", c.s3.Endpoint() != ""),
	}
}

// ParseList parses a comma-separated list, dropping empty entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
