package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/docketflow/internal/domain"
)

// formatValue is a pflag.Value restricted to the known export formats.
type formatValue struct {
	format domain.ExportFormat
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return string(f.format) }

func (f *formatValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidExportFormats[s] {
		return fmt.Errorf("must be one of %s", strings.Join(exportFormatNames(), ", "))
	}
	f.format = domain.ExportFormat(s)
	return nil
}

func (f *formatValue) Type() string { return "format" }

func exportFormatNames() []string {
	names := make([]string, 0, len(domain.ValidExportFormats))
	for name := range domain.ValidExportFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newExportCmd(app *App) *cobra.Command {
	format := &formatValue{format: domain.ExportDOT}
	var all bool
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current view as Graphviz DOT, Mermaid or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Explorer.Export(ctxOf(cmd), format.format, all)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s export to %s\n", format.format, output)
			return nil
		},
	}

	cmd.Flags().VarP(format, "format", "f", "Output format: "+strings.Join(exportFormatNames(), ", "))
	cmd.Flags().BoolVar(&all, "all", false, "Export every node, ignoring groups and phases")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
