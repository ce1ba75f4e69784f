package main

import (
	"log/slog"

	"github.com/helixml/almanac"
	"github.com/helixml/almanac/internal/config"
	"github.com/helixml/almanac/internal/log"
)

// commonFlags are the solver settings shared by commands.
type commonFlags struct {
	envFile   string
	workers   int
	chunkSize uint64
}

// setup loads config, applies flag overrides and builds the logger and
// client. Logs go to stderr so results on stdout stay parseable.
func (f commonFlags) setup() (config.AppConfig, *slog.Logger, *almanac.Client, error) {
	cfg, err := loadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, nil, nil, err
	}
	cfg = cfg.Apply(
		config.WithWorkerCount(f.workers),
		config.WithChunkSize(f.chunkSize),
	)

	logger := log.Configure(cfg).Slog()
	client := almanac.New(
		almanac.WithConfig(cfg),
		almanac.WithLogger(logger),
	)
	return cfg, logger, client, nil
}
