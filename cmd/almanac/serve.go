package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/almanac/infrastructure/api"
	"github.com/helixml/almanac/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may finish.
const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var (
		flags commonFlags
		host  string
		port  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  WORKER_COUNT                 Part 2 workers, 0 for one per CPU (default: 0)
  CHUNK_SIZE                   Values per part 2 task (default: 1048576)
  CACHE_TTL                    Seconds to cache solve results, 0 disables (default: 600)
  REQUEST_TIMEOUT              Seconds before a solve request is abandoned (default: 300)
  CORS_ALLOWED_ORIGINS         Comma-separated list of allowed origins
  REPORTING_LOG_TIME_INTERVAL  Seconds between progress logs (default: 5)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, client, err := flags.setup()
			if err != nil {
				return err
			}
			cfg = applyServeOverrides(cfg, host, port)

			attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
			logger.LogAttrs(cmd.Context(), slog.LevelInfo, "starting almanac", attrs...)

			apiServer := api.NewAPIServer(client, cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- apiServer.ListenAndServe() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := apiServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			_ = client.Close()
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Part 2 workers (default: WORKER_COUNT or one per CPU)")
	cmd.Flags().Uint64Var(&flags.chunkSize, "chunk-size", 0, "Values per part 2 task (default: CHUNK_SIZE)")

	return cmd
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
