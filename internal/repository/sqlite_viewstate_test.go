package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/testutil"
)

func TestViewStateRepo_LoadEmpty(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))

	state, err := repo.Load(context.Background(), "sample")
	require.NoError(t, err)
	assert.NotNil(t, state.GroupExpanded)
	assert.NotNil(t, state.PhaseEnabled)
	assert.Empty(t, state.GroupExpanded)
	assert.Empty(t, state.PhaseEnabled)
}

func TestViewStateRepo_SaveAndLoad(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveGroup(ctx, "sample", "discovery", true))
	require.NoError(t, repo.SavePhase(ctx, "sample", "motions", false))
	require.NoError(t, repo.SavePhase(ctx, "sample", "trial", true))

	state, err := repo.Load(ctx, "sample")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"discovery": true}, state.GroupExpanded)
	assert.Equal(t, map[string]bool{"motions": false, "trial": true}, state.PhaseEnabled)
}

func TestViewStateRepo_SaveOverwrites(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveGroup(ctx, "sample", "discovery", true))
	require.NoError(t, repo.SaveGroup(ctx, "sample", "discovery", false))

	state, err := repo.Load(ctx, "sample")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"discovery": false}, state.GroupExpanded)
}

func TestViewStateRepo_ScopedByDataset(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SavePhase(ctx, "a", "motions", false))
	require.NoError(t, repo.SavePhase(ctx, "b", "motions", true))

	a, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	b, err := repo.Load(ctx, "b")
	require.NoError(t, err)
	assert.False(t, a.PhaseEnabled["motions"])
	assert.True(t, b.PhaseEnabled["motions"])
}

func TestViewStateRepo_Reset(t *testing.T) {
	repo := NewSQLiteViewStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveGroup(ctx, "a", "discovery", true))
	require.NoError(t, repo.SavePhase(ctx, "a", "motions", false))
	require.NoError(t, repo.SavePhase(ctx, "b", "motions", false))

	require.NoError(t, repo.Reset(ctx, "a"))

	a, err := repo.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, a.GroupExpanded)
	assert.Empty(t, a.PhaseEnabled)

	b, err := repo.Load(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, b.PhaseEnabled, 1, "reset leaves other datasets alone")
}

func TestViewStateRepo_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first := testutil.NewTestDBAt(t, path)
	require.NoError(t, NewSQLiteViewStateRepo(first).SaveGroup(ctx, "sample", "discovery", true))
	require.NoError(t, NewSQLiteSettingsRepo(first).Set(ctx, SettingHourlyRate, "250"))
	require.NoError(t, first.Close())

	second := testutil.NewTestDBAt(t, path)
	state, err := NewSQLiteViewStateRepo(second).Load(ctx, "sample")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"discovery": true}, state.GroupExpanded)

	rate, err := GetFloat(ctx, NewSQLiteSettingsRepo(second), SettingHourlyRate)
	require.NoError(t, err)
	assert.Equal(t, 250.0, rate)
}
