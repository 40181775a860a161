package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sage/database"
	"sage/repository/testutil"
)

func TestFavouriteRepository_Tracks(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewFavouriteRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(1, "alice")))

	t.Run("add assigns ID and timestamp", func(t *testing.T) {
		track := testutil.CreateTestTrack(1, "https://example.com/t1")
		require.NoError(t, repo.AddTrack(ctx, track))
		assert.NotZero(t, track.ID)
		assert.False(t, track.AddedIn.IsZero())
	})

	t.Run("duplicate URL for same user is rejected", func(t *testing.T) {
		track := testutil.CreateTestTrack(1, "https://example.com/t1")
		err := repo.AddTrack(ctx, track)
		require.Error(t, err)
		assert.True(t, database.IsConstraintViolation(err))
		assert.Equal(t, "uq_favourite_track_user_url", database.ConstraintName(err))
	})

	t.Run("same URL for a different user is fine", func(t *testing.T) {
		require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(2, "bob")))
		require.NoError(t, repo.AddTrack(ctx, testutil.CreateTestTrack(2, "https://example.com/t1")))
	})

	t.Run("unknown user violates foreign key", func(t *testing.T) {
		err := repo.AddTrack(ctx, testutil.CreateTestTrack(999, "https://example.com/t2"))
		require.Error(t, err)
		assert.True(t, database.IsConstraintViolation(err))
	})

	t.Run("list returns only the user's tracks", func(t *testing.T) {
		require.NoError(t, repo.AddTrack(ctx, testutil.CreateTestTrack(1, "https://example.com/t3")))

		tracks, err := repo.ListTracks(ctx, 1)
		require.NoError(t, err)
		require.Len(t, tracks, 2)
		for _, track := range tracks {
			assert.Equal(t, int64(1), track.UserID)
		}
	})

	t.Run("remove missing track errors", func(t *testing.T) {
		err := repo.RemoveTrack(ctx, 1, "https://example.com/absent")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("remove deletes the row", func(t *testing.T) {
		require.NoError(t, repo.RemoveTrack(ctx, 1, "https://example.com/t3"))

		tracks, err := repo.ListTracks(ctx, 1)
		require.NoError(t, err)
		require.Len(t, tracks, 1)
		assert.Equal(t, "https://example.com/t1", tracks[0].URL)
	})
}

func TestFavouriteRepository_Playlists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	userRepo := NewUserRepository(testDB.DB)
	repo := NewFavouriteRepository(testDB.DB)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, testutil.CreateTestUser(1, "alice")))

	t.Run("add keeps explicit count", func(t *testing.T) {
		playlist := testutil.CreateTestPlaylist(1, "https://example.com/p1", 12)
		require.NoError(t, repo.AddPlaylist(ctx, playlist))
		assert.NotZero(t, playlist.ID)
		assert.Equal(t, 12, playlist.Count)
	})

	t.Run("zero count defaults to one", func(t *testing.T) {
		playlist := testutil.CreateTestPlaylist(1, "https://example.com/p2", 0)
		require.NoError(t, repo.AddPlaylist(ctx, playlist))
		assert.Equal(t, 1, playlist.Count)
	})

	t.Run("negative count is rejected by the store", func(t *testing.T) {
		playlist := testutil.CreateTestPlaylist(1, "https://example.com/p3", -5)
		err := repo.AddPlaylist(ctx, playlist)
		require.Error(t, err)
		assert.True(t, database.IsConstraintViolation(err))
		assert.Equal(t, "ck_favourite_playlist_count", database.ConstraintName(err))
	})

	t.Run("duplicate URL for same user is rejected", func(t *testing.T) {
		err := repo.AddPlaylist(ctx, testutil.CreateTestPlaylist(1, "https://example.com/p1", 2))
		require.Error(t, err)
		assert.True(t, database.IsConstraintViolation(err))
		assert.Equal(t, "uq_favourite_playlist_user_url", database.ConstraintName(err))
	})

	t.Run("list and remove", func(t *testing.T) {
		playlists, err := repo.ListPlaylists(ctx, 1)
		require.NoError(t, err)
		require.Len(t, playlists, 2)

		require.NoError(t, repo.RemovePlaylist(ctx, 1, "https://example.com/p2"))

		playlists, err = repo.ListPlaylists(ctx, 1)
		require.NoError(t, err)
		require.Len(t, playlists, 1)
		assert.Equal(t, "https://example.com/p1", playlists[0].URL)
	})
}
