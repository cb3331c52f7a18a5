package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspbb/tsp"
	"github.com/katalvlaran/tspbb/tsplib"
)

func newBoundsCommand(input *Input) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds FILE",
		Short: "Print the distance matrix and the nearest-neighbour bound table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, input)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			inst, err := tsplib.ParseFile(args[0])
			if err != nil {
				return err
			}
			dm, err := tsp.NewDistanceMatrix(inst.Cities(), inst.Dimension)
			if err != nil {
				return errors.WithMessage(err, inst.String())
			}
			lb, err := tsp.NewLowerBoundTable(dm)
			if err != nil {
				return err
			}
			logger.WithField("instance", inst.String()).Debug("bound table built")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\ndistances:\n%s\n", inst, dm)
			fmt.Fprintln(out, "nearest neighbours:")
			var i int
			for i = 0; i < lb.N(); i++ {
				near := lb.At(i)
				fmt.Fprintf(out, "  city %d: first %s, second %s\n", dm.ID(i), neighborString(near.First), neighborString(near.Second))
			}
			fmt.Fprintf(out, "root bound: %g\n", lb.RootBound())

			return nil
		},
	}
}

func neighborString(n tsp.Neighbor) string {
	if n.Index < 0 {
		return "none"
	}

	return fmt.Sprintf("%d (%g)", n.ID, n.Dist)
}
