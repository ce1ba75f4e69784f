package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use underscore delimiter (e.g., REPORTING_LOG_TIME_INTERVAL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// WorkerCount is the number of range workers; 0 uses every CPU.
	// Env: WORKER_COUNT (default: 0)
	WorkerCount int `envconfig:"WORKER_COUNT" default:"0"`

	// ChunkSize is the number of values handed to a worker at a time.
	// Env: CHUNK_SIZE (default: 1048576)
	ChunkSize uint64 `envconfig:"CHUNK_SIZE" default:"1048576"`

	// CacheTTL is how long solved results are cached by the API, in seconds.
	// Env: CACHE_TTL (default: 600)
	CacheTTL float64 `envconfig:"CACHE_TTL" default:"600"`

	// RequestTimeout is the API request deadline in seconds.
	// Env: REQUEST_TIMEOUT (default: 300)
	RequestTimeout float64 `envconfig:"REQUEST_TIMEOUT" default:"300"`

	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ALLOWED_ORIGINS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`

	// Reporting configures progress reporting.
	Reporting ReportingEnv `envconfig:"REPORTING"`

	// S3 configures reading inputs from s3:// locations.
	S3 S3Env `envconfig:"S3"`
}

// ReportingEnv holds environment configuration for reporting.
type ReportingEnv struct {
	// LogTimeInterval is the logging interval in seconds.
	// Env: REPORTING_LOG_TIME_INTERVAL (default: 5)
	LogTimeInterval float64 `envconfig:"LOG_TIME_INTERVAL" default:"5"`
}

// S3Env holds environment configuration for S3 inputs.
type S3Env struct {
	// Region is the AWS region.
	// Env: S3_REGION (default: us-east-1)
	Region string `envconfig:"REGION" default:"us-east-1"`

	// Endpoint is an optional custom endpoint (e.g. MinIO).
	// Env: S3_ENDPOINT
	Endpoint string `envconfig:"ENDPOINT"`

	// PathStyle enables path-style addressing.
	// Env: S3_PATH_STYLE (default: false)
	PathStyle bool `envconfig:"PATH_STYLE" default:"false"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "ALMANAC" would require ALMANAC_PORT instead of PORT.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithWorkerCount(e.WorkerCount))
	cfg = applyOption(cfg, WithChunkSize(e.ChunkSize))

	if e.CacheTTL > 0 {
		cfg = applyOption(cfg, WithCacheTTL(seconds(e.CacheTTL)))
	}
	if e.RequestTimeout > 0 {
		cfg = applyOption(cfg, WithRequestTimeout(seconds(e.RequestTimeout)))
	}
	if e.CORSAllowedOrigins != "" {
		cfg = applyOption(cfg, WithCORSAllowedOrigins(ParseList(e.CORSAllowedOrigins)))
	}

	cfg = applyOption(cfg, WithReportingConfig(e.Reporting.ToReportingConfig()))
	cfg = applyOption(cfg, WithS3Config(e.S3.ToS3Config()))

	return cfg
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// ToReportingConfig converts ReportingEnv to ReportingConfig.
func (r ReportingEnv) ToReportingConfig() ReportingConfig {
	return NewReportingConfig().
		WithLogTimeInterval(seconds(r.LogTimeInterval))
}

// ToS3Config converts S3Env to S3Config.
func (s S3Env) ToS3Config() S3Config {
	cfg := NewS3Config().
		WithEndpoint(s.Endpoint).
		WithPathStyle(s.PathStyle)
	if s.Region != "" {
		cfg = cfg.WithRegion(s.Region)
	}
	return cfg
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
