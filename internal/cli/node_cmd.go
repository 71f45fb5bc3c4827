package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/domain"
)

func newNodesCmd(app *App) *cobra.Command {
	var all bool
	var stage string

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the steps visible in the current view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := ctxOf(cmd)
			m := app.Explorer.Model()

			nodes := m.Nodes()
			hidden := 0
			if !all {
				visible, err := app.Explorer.VisibleNodes(ctx)
				if err != nil {
					return err
				}
				hidden = len(nodes) - len(visible)
				nodes = visible
			}
			if stage != "" {
				var filtered []domain.Node
				for _, n := range nodes {
					if strings.EqualFold(n.Stage, stage) {
						filtered = append(filtered, n)
					}
				}
				nodes = filtered
			}

			out := cmd.OutOrStdout()
			if len(nodes) == 0 {
				fmt.Fprintln(out, "No nodes to show.")
				return nil
			}

			fmt.Fprintf(out, "%s\n\n", formatter.Header(m.Name()))
			fmt.Fprint(out, formatter.FormatNodeList(formatter.NodeListData{
				Nodes:        nodes,
				PhaseByStage: phaseNames(m),
				Palette:      stagePalette(m),
			}))
			if hidden > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d hidden by collapsed groups or disabled phases; --all shows them", hidden)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include hidden nodes")
	cmd.Flags().StringVar(&stage, "stage", "", "Only nodes in this stage")

	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a step with its costs, documents and links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeID(args[0])
			if err != nil {
				return err
			}
			detail, err := app.Explorer.Node(ctxOf(cmd), id)
			if err != nil {
				return err
			}

			m := app.Explorer.Model()
			phaseName := ""
			if detail.PhaseID != "" {
				if p, err := m.Phase(detail.PhaseID); err == nil {
					phaseName = p.Name
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNodeDetail(formatter.NodeDetailData{
				Detail:    detail,
				PhaseName: phaseName,
				Labels:    nodeLabels(m),
				Palette:   stagePalette(m),
			}))
			return nil
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	var hidden bool

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Find steps by name, rule, stage, owner or document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			hits, err := app.Explorer.Search(ctxOf(cmd), query, hidden)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSearchHits(query, hits, stagePalette(app.Explorer.Model())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, "Also search hidden nodes")

	return cmd
}
