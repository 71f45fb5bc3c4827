package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/docketflow/internal/config"
	"github.com/alexanderramin/docketflow/internal/service"
)

// App holds the services and settings used by CLI commands. Commands wire it
// on first use unless the services are already set.
type App struct {
	Explorer  service.ExplorerService
	Scenarios service.ScenarioService

	Config *config.Config
	Logger *slog.Logger

	// DatasetPath is the absolute dataset file being served, or "" for the
	// embedded dataset. The explorer watches it for changes.
	DatasetPath string

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	Now           func() time.Time

	db *sql.DB
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Close releases the database opened by Wire.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// Commands annotated with wireLazy call App.Wire themselves when needed.
const (
	annotationWire = "wire"
	wireLazy       = "lazy"
)

// NewRootCmd creates the top-level "docketflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var opts WireOptions

	root := &cobra.Command{
		Use:           "docketflow",
		Short:         "Explore a litigation workflow: what happens next, what it costs, how to get there",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Explorer != nil || cmd.Annotations[annotationWire] == wireLazy {
				return nil
			}
			return app.Wire(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Config file (default ~/.docketflow/config.yaml)")
	root.PersistentFlags().StringVar(&opts.Dataset, "dataset", "", "Dataset file (JSON or YAML); overrides the config")

	root.AddCommand(
		newNodesCmd(app),
		newShowCmd(app),
		newSearchCmd(app),
		newCostCmd(app),
		newPathsCmd(app),
		newGroupCmd(app),
		newPhaseCmd(app),
		newRateCmd(app),
		newScenarioCmd(app),
		newExportCmd(app),
		newValidateCmd(app),
		newResetCmd(app),
		newExploreCmd(app),
	)

	return root
}

// Execute runs the command tree under ctx and closes the database
// afterwards.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if cerr := app.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing database: %w", cerr)
	}
	return err
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
