package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspbb/config"
)

// Execute is the entry point to running the CLI
func Execute(ctx context.Context, version string) {
	input := new(Input)
	if err := createRootCommand(ctx, input, version).Execute(); err != nil {
		os.Exit(1)
	}
}

func createRootCommand(ctx context.Context, input *Input, version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tspbb",
		Short:        "Solve small Euclidean TSP instances exactly with branch-and-bound",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&input.configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringArrayVar(&input.envFiles, "env-file", nil, "dotenv file with TSPBB_* settings (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&input.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&input.logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(
		newSolveCommand(ctx, input),
		newBoundsCommand(input),
		newVersionCommand(version),
	)

	return rootCmd
}

// loadConfig reads the config file, env files and environment, then applies every flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command, input *Input) (*config.Config, error) {
	cfg, err := config.Load(input.configPath, input.envFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if input.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = input.logFormat
	}
	if flags.Lookup("workers") != nil {
		if flags.Changed("workers") {
			cfg.Search.Workers = input.workers
		}
		if flags.Changed("max-nodes") {
			cfg.Search.MaxNodes = input.maxNodes
		}
		if flags.Changed("time-limit") {
			cfg.Search.TimeLimit = input.timeLimit
		}
		if flags.Changed("start") {
			cfg.Search.StartCity = input.start
		}
		if flags.Changed("seed-nn") {
			cfg.Search.SeedNearestNeighbor = input.seedNN
		}
		if flags.Changed("format") {
			cfg.Output.Format = input.format
		}
		if flags.Changed("canonical") {
			cfg.Output.Canonical = input.canonical
		}
		if flags.Changed("output") {
			cfg.Output.Path = input.output
		}
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "tspbb version "+version)
		},
	}
}
