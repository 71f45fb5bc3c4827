package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
)

func newScenarioCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Save and compare named what-if selections",
	}

	cmd.AddCommand(
		newScenarioSaveCmd(app),
		&cobra.Command{
			Use:   "list",
			Short: "List saved scenarios",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				scenarios, err := app.Scenarios.List(ctxOf(cmd))
				if err != nil {
					return err
				}
				if len(scenarios) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No scenarios saved.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScenarioList(scenarios, app.now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Price a saved scenario",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				detail, err := app.Scenarios.Show(ctxOf(cmd), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatScenarioDetail(detail, app.Explorer.Model().Name()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete NAME",
			Short: "Delete a saved scenario",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Scenarios.Delete(ctxOf(cmd), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted scenario %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

func newScenarioSaveCmd(app *App) *cobra.Command {
	var rate float64

	cmd := &cobra.Command{
		Use:   "save NAME ID...",
		Short: "Save a selection of steps under a name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseNodeIDs(args[1:])
			if err != nil {
				return err
			}
			var ratePtr *float64
			if cmd.Flags().Changed("rate") {
				ratePtr = &rate
			}

			sc, err := app.Scenarios.Save(ctxOf(cmd), args[0], ids, ratePtr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved scenario %s (%s at %s/h)\n",
				formatter.Bold(sc.Name),
				formatter.Plural(len(sc.NodeIDs), "step", "steps"),
				formatter.FormatMoney(sc.HourlyRate))
			return nil
		},
	}

	cmd.Flags().Float64Var(&rate, "rate", 0, "Hourly rate to save with the scenario (default: stored rate)")

	return cmd
}
