package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	var (
		flags  commonFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "project <input> <value>...",
		Short: "Trace values through every stage of an almanac",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			_, _, client, err := flags.setup()
			if err != nil {
				return err
			}

			doc, err := client.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			return writeProjections(cmd.OutOrStdout(), format, client.Project(doc, values...))
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVarP(&output, "output", "o", string(outputText), "Output format: text, json or yaml")

	return cmd
}

func parseValues(args []string) ([]uint64, error) {
	values := make([]uint64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", arg, err)
		}
		values[i] = v
	}
	return values, nil
}
