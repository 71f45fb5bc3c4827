package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/dataset"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/repository"
	"github.com/alexanderramin/docketflow/internal/testutil"
)

func sampleSchema(t *testing.T) *dataset.Schema {
	t.Helper()
	return testutil.SampleSchema(t)
}

type explorerFixture struct {
	db       *sql.DB
	svc      ExplorerService
	views    *repository.SQLiteViewStateRepo
	settings *repository.SQLiteSettingsRepo
}

func setupExplorer(t *testing.T, opts ExplorerOptions) explorerFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	views := repository.NewSQLiteViewStateRepo(database)
	settings := repository.NewSQLiteSettingsRepo(database)
	svc, err := NewExplorerService(context.Background(), SchemaLoader{Schema: sampleSchema(t)}, views, settings, opts)
	require.NoError(t, err)
	return explorerFixture{db: database, svc: svc, views: views, settings: settings}
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}

func newStoredScenario(name string, ids ...int) *domain.Scenario {
	return &domain.Scenario{
		ID:         uuid.New().String(),
		Name:       name,
		Dataset:    "sample",
		NodeIDs:    ids,
		HourlyRate: 100,
		CreatedAt:  time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}
