package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Expand or collapse groups of steps",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List groups and their members",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := app.Explorer.View(ctxOf(cmd))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGroups(v.Groups, nodeLabels(app.Explorer.Model())))
				return nil
			},
		},
		groupSetCmd(app, "expand", "Show a group's members", true),
		groupSetCmd(app, "collapse", "Hide a group's members", false),
		&cobra.Command{
			Use:   "toggle GROUP",
			Short: "Flip a group between expanded and collapsed",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				expanded, err := app.Explorer.ToggleGroup(ctxOf(cmd), args[0])
				if err != nil {
					return err
				}
				printGroupState(cmd, args[0], expanded)
				return nil
			},
		},
	)

	return cmd
}

func groupSetCmd(app *App, use, short string, expanded bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Explorer.SetGroup(ctxOf(cmd), args[0], expanded); err != nil {
				return err
			}
			printGroupState(cmd, args[0], expanded)
			return nil
		},
	}
}

func printGroupState(cmd *cobra.Command, id string, expanded bool) {
	fmt.Fprintf(cmd.OutOrStdout(), "Group %s %s\n", formatter.Bold(id), formatter.OnOff(expanded, "expanded", "collapsed"))
}

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Enable or disable phases of the case",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List phases and their stages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := app.Explorer.View(ctxOf(cmd))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, formatter.FormatPhases(v.Phases, len(app.Explorer.Model().Nodes())))
				if len(v.Parallel) > 0 {
					fmt.Fprintf(out, "\n%s\n%s\n", formatter.Header("Available throughout"),
						formatter.FormatParallel(v.Parallel, nodeLabels(app.Explorer.Model())))
				}
				return nil
			},
		},
		phaseSetCmd(app, "enable", "Show the steps of a phase", true),
		phaseSetCmd(app, "disable", "Hide the steps of a phase", false),
		&cobra.Command{
			Use:   "toggle PHASE",
			Short: "Flip a phase between enabled and disabled",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := app.Explorer.TogglePhase(ctxOf(cmd), args[0])
				if err != nil {
					return err
				}
				printPhaseState(cmd, args[0], enabled)
				return nil
			},
		},
	)

	return cmd
}

func phaseSetCmd(app *App, use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PHASE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Explorer.SetPhase(ctxOf(cmd), args[0], enabled); err != nil {
				return err
			}
			printPhaseState(cmd, args[0], enabled)
			return nil
		},
	}
}

func printPhaseState(cmd *cobra.Command, id string, enabled bool) {
	fmt.Fprintf(cmd.OutOrStdout(), "Phase %s %s\n", formatter.Bold(id), formatter.OnOff(enabled, "enabled", "disabled"))
}

func newRateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Show or set the hourly rate used for fee estimates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRate(ctxOf(cmd), cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the hourly rate",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printRate(ctxOf(cmd), cmd, app)
			},
		},
		&cobra.Command{
			Use:   "set AMOUNT",
			Short: "Set the hourly rate",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rate, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return fmt.Errorf("invalid rate %q", args[0])
				}
				if err := app.Explorer.SetHourlyRate(ctxOf(cmd), rate); err != nil {
					return err
				}
				return printRate(ctxOf(cmd), cmd, app)
			},
		},
		&cobra.Command{
			Use:   "off",
			Short: "Stop pricing attorney hours",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Explorer.SetHourlyRate(ctxOf(cmd), 0); err != nil {
					return err
				}
				return printRate(ctxOf(cmd), cmd, app)
			},
		},
	)

	return cmd
}

func printRate(ctx context.Context, cmd *cobra.Command, app *App) error {
	rate, err := app.Explorer.HourlyRate(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRate(rate))
	return nil
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore every group and phase to its default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Explorer.Reset(ctxOf(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "View reset to dataset defaults.")
			return nil
		},
	}
}
