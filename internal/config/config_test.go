package config

import (
	"runtime"
	"testing"
	"time"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultWorkerCount != 0 {
		t.Errorf("DefaultWorkerCount = %v, want 0", DefaultWorkerCount)
	}
	if DefaultChunkSize != 1<<20 {
		t.Errorf("DefaultChunkSize = %v, want %v", DefaultChunkSize, 1<<20)
	}
	if DefaultHost != "0.0.0.0" {
		t.Errorf("DefaultHost = %v, want '0.0.0.0'", DefaultHost)
	}
	if DefaultPort != 8080 {
		t.Errorf("DefaultPort = %v, want 8080", DefaultPort)
	}
	if DefaultLogLevel != "INFO" {
		t.Errorf("DefaultLogLevel = %v, want 'INFO'", DefaultLogLevel)
	}
	if DefaultReportingInterval != 5*time.Second {
		t.Errorf("DefaultReportingInterval = %v, want 5s", DefaultReportingInterval)
	}
}

func TestReportingConfig(t *testing.T) {
	cfg := NewReportingConfig()

	if cfg.LogTimeInterval() != DefaultReportingInterval {
		t.Errorf("LogTimeInterval() = %v, want %v", cfg.LogTimeInterval(), DefaultReportingInterval)
	}

	cfg = cfg.WithLogTimeInterval(10 * time.Second)
	if cfg.LogTimeInterval() != 10*time.Second {
		t.Errorf("LogTimeInterval() = %v, want 10s", cfg.LogTimeInterval())
	}
}

func TestS3Config(t *testing.T) {
	cfg := NewS3Config()
	if cfg.Region() != DefaultS3Region {
		t.Errorf("Region() = %v, want %v", cfg.Region(), DefaultS3Region)
	}
	if cfg.PathStyle() {
		t.Error("PathStyle() should be false by default")
	}

	cfg = cfg.WithRegion("eu-central-1").WithEndpoint("http://minio:9000").WithPathStyle(true)
	if cfg.Region() != "eu-central-1" || cfg.Endpoint() != "http://minio:9000" || !cfg.PathStyle() {
		t.Errorf("unexpected S3 config: %+v", cfg)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %v, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.WorkerCount() != runtime.NumCPU() {
		t.Errorf("WorkerCount() = %v, want %v", cfg.WorkerCount(), runtime.NumCPU())
	}
	if cfg.LogFormat() != LogFormatPretty {
		t.Errorf("LogFormat() = %v, want pretty", cfg.LogFormat())
	}
	if len(cfg.CORSAllowedOrigins()) != 0 {
		t.Errorf("CORSAllowedOrigins() = %v, want empty", cfg.CORSAllowedOrigins())
	}
}

func TestAppConfig_Options(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("localhost"),
		WithPort(9000),
		WithWorkerCount(3),
		WithChunkSize(64),
		WithCacheTTL(time.Minute),
	)

	if cfg.Addr() != "localhost:9000" {
		t.Errorf("Addr() = %v, want localhost:9000", cfg.Addr())
	}
	if cfg.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %v, want 3", cfg.WorkerCount())
	}
	if cfg.ChunkSize() != 64 {
		t.Errorf("ChunkSize() = %v, want 64", cfg.ChunkSize())
	}
	if cfg.CacheTTL() != time.Minute {
		t.Errorf("CacheTTL() = %v, want 1m", cfg.CacheTTL())
	}

	// Non-positive values are ignored.
	cfg = cfg.Apply(WithWorkerCount(0), WithChunkSize(0))
	if cfg.WorkerCount() != 3 {
		t.Errorf("WorkerCount() = %v, want 3", cfg.WorkerCount())
	}
	if cfg.ChunkSize() != 64 {
		t.Errorf("ChunkSize() = %v, want 64", cfg.ChunkSize())
	}
}

func TestAppConfig_CORSOriginsCopied(t *testing.T) {
	origins := []string{"http://a.test"}
	cfg := NewAppConfigWithOptions(WithCORSAllowedOrigins(origins))

	origins[0] = "mutated"
	got := cfg.CORSAllowedOrigins()
	if got[0] != "http://a.test" {
		t.Errorf("CORSAllowedOrigins()[0] = %v, want http://a.test", got[0])
	}

	got[0] = "mutated"
	if cfg.CORSAllowedOrigins()[0] != "http://a.test" {
		t.Error("CORSAllowedOrigins() should return a copy")
	}
}

func TestAppConfig_LogAttrs(t *testing.T) {
	attrs := NewAppConfig().LogAttrs()

	keys := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		keys[a.Key] = true
	}
	for _, k := range []string{"log_level", "workers", "chunk_size", "report_interval", "cache_ttl", "s3_region"} {
		if !keys[k] {
			t.Errorf("LogAttrs() missing %q", k)
		}
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"a", 1},
		{"a,b", 2},
		{" a , , b ,", 2},
	}

	for _, tt := range tests {
		if got := ParseList(tt.input); len(got) != tt.want {
			t.Errorf("ParseList(%q) = %v, want %d items", tt.input, got, tt.want)
		}
	}
}
