package cmd

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspbb/common"
	"github.com/katalvlaran/tspbb/config"
	"github.com/katalvlaran/tspbb/tsp"
	"github.com/katalvlaran/tspbb/tsplib"
)

func newSolveCommand(ctx context.Context, input *Input) *cobra.Command {
	solveCmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Find an optimal tour of a TSPLIB EUC_2D instance",
		Args:  cobra.ExactArgs(1),
		RunE:  newSolveAction(ctx, input),
	}
	solveCmd.Flags().IntVarP(&input.workers, "workers", "w", 1, "number of concurrent subtree workers")
	solveCmd.Flags().Int64Var(&input.maxNodes, "max-nodes", 0, "stop after this many search nodes (0 = unlimited)")
	solveCmd.Flags().DurationVarP(&input.timeLimit, "time-limit", "t", 0, "stop after this long (0 = unlimited)")
	solveCmd.Flags().IntVar(&input.start, "start", 0, "city ID to start from (0 = lowest ID)")
	solveCmd.Flags().BoolVar(&input.seedNN, "seed-nn", false, "seed the search with a nearest-neighbour tour")
	solveCmd.Flags().StringVarP(&input.output, "output", "o", "", "write the result to this file instead of stdout")
	solveCmd.Flags().StringVarP(&input.format, "format", "f", "tour", "output format: tour or json")
	solveCmd.Flags().BoolVar(&input.canonical, "canonical", false, "rotate the tour to start at the lowest ID")

	return solveCmd
}

func newSolveAction(ctx context.Context, input *Input) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, input)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		ctx := common.WithLogger(ctx, logger)

		inst, err := tsplib.ParseFile(args[0])
		if err != nil {
			return err
		}
		dm, err := tsp.NewDistanceMatrix(inst.Cities(), inst.Dimension)
		if err != nil {
			return errors.WithMessage(err, inst.String())
		}

		opts := cfg.SearchOptions()
		opts.OnImprove = func(_ []int, cost float64) {
			logger.WithField("cost", cost).Debug("improved tour")
		}
		logger.WithFields(log.Fields{
			"instance": inst.String(),
			"workers":  opts.Workers,
		}).Info("solving")

		res, err := tsp.Solve(ctx, dm, opts)
		if err != nil {
			return err
		}

		entry := logger.WithFields(log.Fields{
			"cost":    res.Cost,
			"nodes":   res.Nodes,
			"pruned":  res.Pruned,
			"elapsed": res.Elapsed.String(),
		})
		if res.Optimal {
			entry.Info("optimal tour found")
		} else {
			entry.WithField("stopped", res.Stopped.String()).Warn("search stopped early, tour may not be optimal")
		}

		if cfg.Output.Canonical {
			res.Tour = tsp.CanonicalTour(res.Tour)
		}

		return writeResult(cmd.OutOrStdout(), cfg.Output, inst, res)
	}
}

// writeResult renders res to out, or to cfg.Path when set.
func writeResult(out io.Writer, cfg config.OutputConfig, inst *tsplib.Instance, res tsp.Result) (err error) {
	if cfg.Path != "" {
		f, ferr := os.Create(cfg.Path)
		if ferr != nil {
			return errors.WithStack(ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = errors.WithStack(cerr)
			}
		}()
		out = f
	}

	if cfg.Format == "json" {
		return tsplib.WriteJSON(out, inst, res)
	}

	return tsplib.WriteTour(out, inst, res.Tour, res.Cost)
}
