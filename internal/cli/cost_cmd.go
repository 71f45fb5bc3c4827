package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/pathfind"
	"github.com/alexanderramin/docketflow/internal/service"
)

func newCostCmd(app *App) *cobra.Command {
	var rate float64
	var pick, breakdown bool

	cmd := &cobra.Command{
		Use:   "cost [ID...]",
		Short: "Estimate hours, fees, fixed costs and duration for a set of steps",
		Long: `Estimate the cost of a what-if selection of steps. Ids can be given as
separate arguments or comma separated. Durations are summed across steps, not
computed along a critical path.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			ids, err := parseNodeIDs(args)
			if err != nil {
				return err
			}

			if pick {
				if !app.interactive() {
					return errors.New("--pick needs an interactive terminal")
				}
				nodes, err := app.Explorer.VisibleNodes(ctx)
				if err != nil {
					return err
				}
				options, unshown := pickOptions(nodes, app.Explorer.Model(), ids)
				if err := pickNodesForm(options, &ids).Run(); err != nil {
					return err
				}
				ids = append(ids, unshown...)
			}
			if len(ids) == 0 {
				return service.ErrNoSelection
			}

			var ratePtr *float64
			if cmd.Flags().Changed("rate") {
				ratePtr = &rate
			}
			res, err := app.Explorer.Estimate(ctx, ids, ratePtr)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEstimate(res, breakdown))
			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate for this estimate (default: stored rate)")
	cmd.Flags().BoolVar(&pick, "pick", false, "Choose steps interactively")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Show each step's contribution")

	return cmd
}

func newPathsCmd(app *App) *cobra.Command {
	var visibleOnly, shortest bool

	cmd := &cobra.Command{
		Use:   "paths START END",
		Short: "List every route from one step to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			end, err := parseNodeID(args[1])
			if err != nil {
				return err
			}

			paths, err := app.Explorer.Paths(ctxOf(cmd), start, end, visibleOnly)
			if err != nil {
				return err
			}
			if shortest {
				paths = pathfind.Shortest(paths)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPaths(paths, nodeLabels(app.Explorer.Model()), start, end))
			return nil
		},
	}

	cmd.Flags().BoolVar(&visibleOnly, "visible-only", false, "Drop routes through hidden steps")
	cmd.Flags().BoolVar(&shortest, "shortest", false, "Keep only the routes with the fewest steps")

	return cmd
}
