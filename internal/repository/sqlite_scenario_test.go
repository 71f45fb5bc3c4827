package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/db"
	"github.com/alexanderramin/docketflow/internal/domain"
	"github.com/alexanderramin/docketflow/internal/testutil"
)

func newScenario(name string, rate float64, ids ...int) *domain.Scenario {
	return &domain.Scenario{
		ID:         uuid.New().String(),
		Name:       name,
		Dataset:    "sample",
		NodeIDs:    ids,
		HourlyRate: rate,
		CreatedAt:  time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestScenarioRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteScenarioRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := newScenario("motion practice", 350, 3, 0, 7)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByName(ctx, "motion practice")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "sample", got.Dataset)
	assert.Equal(t, []int{3, 0, 7}, got.NodeIDs, "selection order is preserved")
	assert.Equal(t, 350.0, got.HourlyRate)
	assert.True(t, s.CreatedAt.Equal(got.CreatedAt))
}

func TestScenarioRepo_EmptySelection(t *testing.T) {
	repo := NewSQLiteScenarioRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newScenario("empty", 0)))
	got, err := repo.GetByName(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, got.NodeIDs)
	assert.Empty(t, got.NodeIDs)
}

func TestScenarioRepo_DuplicateName(t *testing.T) {
	repo := NewSQLiteScenarioRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newScenario("dup", 100, 1)))
	err := repo.Create(ctx, newScenario("dup", 200, 2))
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestScenarioRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteScenarioRepo(testutil.NewTestDB(t))

	_, err := repo.GetByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScenarioRepo_List(t *testing.T) {
	repo := NewSQLiteScenarioRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	later := newScenario("later", 300, 8)
	later.CreatedAt = later.CreatedAt.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, later))
	require.NoError(t, repo.Create(ctx, newScenario("earlier", 300, 0, 1)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "earlier", list[0].Name)
	assert.Equal(t, []int{0, 1}, list[0].NodeIDs)
	assert.Equal(t, "later", list[1].Name)
	assert.Equal(t, []int{8}, list[1].NodeIDs)
}

func TestScenarioRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScenarioRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newScenario("gone", 300, 1, 2)))
	require.NoError(t, repo.Delete(ctx, "gone"))

	_, err := repo.GetByName(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM scenario_nodes`).Scan(&orphans))
	assert.Equal(t, 0, orphans)

	assert.ErrorIs(t, repo.Delete(ctx, "gone"), ErrNotFound)
}

func TestScenarioRepo_CreateRollsBackInUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	// Exec 1 inserts the scenario, exec 3 is the second node row.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: boom}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteScenarioRepo(tx).Create(ctx, newScenario("partial", 300, 1, 2, 3))
	})
	require.ErrorIs(t, err, boom)

	_, err = NewSQLiteScenarioRepo(database).GetByName(ctx, "partial")
	assert.ErrorIs(t, err, ErrNotFound)
}
