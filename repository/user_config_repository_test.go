package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sage/database"
	"sage/models"
	"sage/repository/testutil"
)

func TestUserConfigRepository_GetByUserID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewUserConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no config row", func(t *testing.T) {
		config, err := repo.GetByUserID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("existing row", func(t *testing.T) {
		require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(1, "alice")))
		require.NoError(t, repo.Upsert(ctx, &models.UserConfig{
			UserID:           1,
			TranslatePrivate: true,
		}))

		config, err := repo.GetByUserID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.True(t, config.TranslatePrivate)
		assert.False(t, config.FactCheckPrivate)
	})
}

func TestUserConfigRepository_GetOrCreate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewUserConfigRepository(testDB.DB)
	ctx := context.Background()

	t.Run("creates default row lazily", func(t *testing.T) {
		require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(1, "alice")))

		config, err := repo.GetOrCreate(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, int64(1), config.UserID)
		assert.False(t, config.TranslatePrivate)
		assert.False(t, config.FactCheckPrivate)
		assert.False(t, config.HasNonDefaultPreference())
	})

	t.Run("returns existing row unchanged", func(t *testing.T) {
		require.NoError(t, repo.Upsert(ctx, &models.UserConfig{
			UserID:           1,
			FactCheckPrivate: true,
		}))

		config, err := repo.GetOrCreate(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.True(t, config.FactCheckPrivate)
	})

	t.Run("missing user violates foreign key", func(t *testing.T) {
		_, err := repo.GetOrCreate(ctx, 999)
		require.Error(t, err)
		assert.True(t, database.IsConstraintViolation(err))
	})
}

func TestUserConfigRepository_Upsert(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewUserConfigRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(1, "alice")))

	// First write creates the row
	config := &models.UserConfig{UserID: 1}
	config.SetTranslatePrivate(1)
	config.SetFactCheckPrivate(nil)
	require.NoError(t, repo.Upsert(ctx, config))

	stored, err := repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.TranslatePrivate)
	assert.False(t, stored.FactCheckPrivate)

	// Second write overwrites both flags
	config.SetTranslatePrivate(0)
	config.SetFactCheckPrivate("yes")
	require.NoError(t, repo.Upsert(ctx, config))

	stored, err = repo.GetByUserID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.TranslatePrivate)
	assert.True(t, stored.FactCheckPrivate)
}
