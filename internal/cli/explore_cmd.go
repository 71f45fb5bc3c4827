package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newExploreCmd(app *App) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the workflow interactively",
		Long: `Browse the workflow in a full-screen explorer. Move with the arrow keys,
expand groups with enter, toggle phases with 1-9, select steps with space for
a running cost estimate and search with /. When the dataset is a file it is
reloaded automatically after it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("explore needs an interactive terminal")
			}

			ctx, cancel := context.WithCancel(ctxOf(cmd))
			defer cancel()

			var changes <-chan struct{}
			if app.DatasetPath != "" && !noWatch && (app.Config == nil || app.Config.Watch) {
				w, err := newDatasetWatcher(app.DatasetPath, defaultDebounce, app.Logger)
				if err != nil {
					return err
				}
				defer w.Close()
				go w.Run(ctx)
				changes = w.Changes()
			}

			p := tea.NewProgram(newExploreModel(ctx, app, changes), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the dataset when the file changes")

	return cmd
}
