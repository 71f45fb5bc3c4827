package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/cli/formatter"
	"github.com/alexanderramin/docketflow/internal/config"
	"github.com/alexanderramin/docketflow/internal/dataset"
)

func newValidateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a dataset for broken references and inconsistent data",
		Long: `Check a dataset for dangling links, unknown groups, inconsistent group
membership, stages claimed by two phases and incomplete estimates. With no
FILE the configured dataset is checked. Exits non-zero when issues are found.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationWire: wireLazy},
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := configFor(app, cmd)
				if err != nil {
					return err
				}
				path = cfg.Dataset
			}

			schema, err := dataset.Load(path)
			if err != nil {
				return err
			}
			issues := dataset.Validate(schema)

			name := schema.Name
			if path != "" {
				name = path
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIssues(name, issues))
			if len(issues) > 0 {
				return fmt.Errorf("%w: %s", dataset.ErrInvalidDataset, formatter.Plural(len(issues), "issue", "issues"))
			}
			return nil
		},
	}

	return cmd
}

// configFor returns the wired config, or loads it from the root flags
// without opening the database.
func configFor(app *App, cmd *cobra.Command) (*config.Config, error) {
	if app.Config != nil {
		return app.Config, nil
	}
	cfg, err := config.Load(flagString(cmd, "config"))
	if err != nil {
		return nil, err
	}
	if ds := flagString(cmd, "dataset"); ds != "" {
		cfg.Dataset = ds
	}
	return cfg, nil
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}
