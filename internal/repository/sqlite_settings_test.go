package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/docketflow/internal/testutil"
)

func TestSettingsRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), SettingHourlyRate)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo_SetGetDelete(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, SettingDataset, "sample"))
	require.NoError(t, repo.Set(ctx, SettingDataset, "other"))

	v, err := repo.Get(ctx, SettingDataset)
	require.NoError(t, err)
	assert.Equal(t, "other", v)

	require.NoError(t, repo.Delete(ctx, SettingDataset))
	require.NoError(t, repo.Delete(ctx, SettingDataset), "deleting twice is fine")
	_, err = repo.Get(ctx, SettingDataset)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsRepo_Float(t *testing.T) {
	repo := NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := GetFloat(ctx, repo, SettingHourlyRate)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, SetFloat(ctx, repo, SettingHourlyRate, 312.5))
	rate, err := GetFloat(ctx, repo, SettingHourlyRate)
	require.NoError(t, err)
	assert.Equal(t, 312.5, rate)

	require.NoError(t, repo.Set(ctx, SettingHourlyRate, "lots"))
	_, err = GetFloat(ctx, repo, SettingHourlyRate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}
