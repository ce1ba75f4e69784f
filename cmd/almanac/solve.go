package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/helixml/almanac/application/service"
)

func solveCmd() *cobra.Command {
	var (
		flags  commonFlags
		part   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "solve <input>",
		Short: "Print the lowest location for the seeds in an almanac",
		Long: `Print the lowest location reachable from the almanac's seeds.

Part 1 treats every seed as a single value. Part 2 reads the seeds as
(start, length) pairs and scans every value of every range in parallel.

<input> is a file path, "-" for standard input, or s3://bucket/key.

Environment variables:
  WORKER_COUNT                 Part 2 workers, 0 for one per CPU (default: 0)
  CHUNK_SIZE                   Values per part 2 task (default: 1048576)
  REPORTING_LOG_TIME_INTERVAL  Seconds between progress logs (default: 5)
  LOG_LEVEL                    DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   pretty, json (default: pretty)
  S3_REGION                    Region for s3:// inputs (default: us-east-1)
  S3_ENDPOINT                  Custom S3 endpoint, e.g. MinIO
  S3_PATH_STYLE                Path-style S3 addressing (default: false)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts, err := parsePartFlag(part)
			if err != nil {
				return err
			}
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}

			_, logger, client, err := flags.setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			doc, err := client.Load(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			logger.Debug("almanac loaded",
				slog.Int("seeds", len(doc.Seeds())),
				slog.Int("stages", doc.Chain().Len()),
			)

			result, err := client.Solve(ctx, doc, parts...)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), format, result)
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&part, "part", "all", "Part to solve: 1, 2 or all")
	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "Output format: text, json or yaml")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Part 2 workers (default: WORKER_COUNT or one per CPU)")
	cmd.Flags().Uint64Var(&flags.chunkSize, "chunk-size", 0, "Values per part 2 task (default: CHUNK_SIZE)")

	return cmd
}

func parsePartFlag(s string) ([]service.Part, error) {
	switch s {
	case "", "all":
		return service.AllParts, nil
	case "1":
		return []service.Part{service.PartOne}, nil
	case "2":
		return []service.Part{service.PartTwo}, nil
	default:
		return nil, fmt.Errorf("unknown part %q (want 1, 2 or all)", s)
	}
}
