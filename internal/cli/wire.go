package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/docketflow/internal/config"
	"github.com/alexanderramin/docketflow/internal/db"
	"github.com/alexanderramin/docketflow/internal/repository"
	"github.com/alexanderramin/docketflow/internal/service"
)

// WireOptions are the command-line inputs to App.Wire.
type WireOptions struct {
	ConfigPath string
	Dataset    string
}

// Wire loads configuration, opens the database and builds the services.
func (a *App) Wire(ctx context.Context, opts WireOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Dataset != "" {
		cfg.Dataset = opts.Dataset
	}
	a.Config = cfg

	if a.Logger == nil {
		a.Logger = cfg.NewLogger(os.Stderr)
	}
	for _, w := range cfg.Validate() {
		a.Logger.Warn("config", "warning", w)
	}

	dbPath := cfg.DB
	if dbPath == "" {
		dbPath = db.MemoryPath
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.db = database

	loader := service.FileLoader{FilePath: cfg.Dataset}
	a.DatasetPath = loader.Path()
	observer := service.NewLogUseCaseObserver(a.Logger)

	explorer, err := service.NewExplorerService(ctx, loader,
		repository.NewSQLiteViewStateRepo(database),
		repository.NewSQLiteSettingsRepo(database),
		service.ExplorerOptions{
			Strict:      cfg.Strict,
			DefaultRate: cfg.EffectiveRate(),
			Logger:      a.Logger,
		},
		observer,
	)
	if err != nil {
		return err
	}
	a.Explorer = explorer
	a.Scenarios = service.NewScenarioService(explorer,
		repository.NewSQLiteScenarioRepo(database),
		db.NewSQLiteUnitOfWork(database),
		observer,
	)
	return nil
}
