package repository

import (
	"context"
	"fmt"

	"sage/database"
	"sage/models"
)

// FavouriteRepository implements the FavouriteRepository interface for both
// favourite tracks and favourite playlists.
type FavouriteRepository struct {
	q queryable
}

// NewFavouriteRepository creates a new favourite repository
func NewFavouriteRepository(db *database.DB) *FavouriteRepository {
	return &FavouriteRepository{q: db.Pool}
}

// newFavouriteRepositoryWithTx creates a new favourite repository with a transaction
func newFavouriteRepositoryWithTx(tx queryable) *FavouriteRepository {
	return &FavouriteRepository{q: tx}
}

// AddTrack inserts a favourite track. Favouriting the same URL twice for
// one user violates uq_favourite_track_user_url and is rejected by the
// store.
func (r *FavouriteRepository) AddTrack(ctx context.Context, track *models.FavouriteTrack) error {
	query := `
		INSERT INTO favourite_tracks (user_id, title, url, duration, uploader)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, added_in
	`

	err := r.q.QueryRow(ctx, query,
		track.UserID,
		track.Title,
		track.URL,
		track.Duration,
		track.Uploader,
	).Scan(&track.ID, &track.AddedIn)
	if err != nil {
		return fmt.Errorf("failed to add favourite track for user %d: %w", track.UserID, err)
	}

	return nil
}

// RemoveTrack deletes a user's favourite track by URL
func (r *FavouriteRepository) RemoveTrack(ctx context.Context, userID int64, url string) error {
	result, err := r.q.Exec(ctx,
		`DELETE FROM favourite_tracks WHERE user_id = $1 AND url = $2`,
		userID, url,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favourite track for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favourite track %s for user %d not found", url, userID)
	}

	return nil
}

// ListTracks returns all favourite tracks of a user
func (r *FavouriteRepository) ListTracks(ctx context.Context, userID int64) ([]*models.FavouriteTrack, error) {
	query := `
		SELECT id, user_id, title, url, duration, uploader, added_in
		FROM favourite_tracks
		WHERE user_id = $1
		ORDER BY added_in, id
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite tracks for user %d: %w", userID, err)
	}
	defer rows.Close()

	var tracks []*models.FavouriteTrack
	for rows.Next() {
		var track models.FavouriteTrack
		err := rows.Scan(
			&track.ID,
			&track.UserID,
			&track.Title,
			&track.URL,
			&track.Duration,
			&track.Uploader,
			&track.AddedIn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite track: %w", err)
		}
		tracks = append(tracks, &track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favourite tracks: %w", err)
	}

	return tracks, nil
}

// AddPlaylist inserts a favourite playlist. A zero Count is lifted to the
// default of 1; a negative count is left for the check constraint to
// reject.
func (r *FavouriteRepository) AddPlaylist(ctx context.Context, playlist *models.FavouritePlaylist) error {
	count := playlist.Count
	if count == 0 {
		count = 1
	}

	query := `
		INSERT INTO favourite_playlists (user_id, title, url, count, uploader)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, count, added_in
	`

	err := r.q.QueryRow(ctx, query,
		playlist.UserID,
		playlist.Title,
		playlist.URL,
		count,
		playlist.Uploader,
	).Scan(&playlist.ID, &playlist.Count, &playlist.AddedIn)
	if err != nil {
		return fmt.Errorf("failed to add favourite playlist for user %d: %w", playlist.UserID, err)
	}

	return nil
}

// RemovePlaylist deletes a user's favourite playlist by URL
func (r *FavouriteRepository) RemovePlaylist(ctx context.Context, userID int64, url string) error {
	result, err := r.q.Exec(ctx,
		`DELETE FROM favourite_playlists WHERE user_id = $1 AND url = $2`,
		userID, url,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favourite playlist for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favourite playlist %s for user %d not found", url, userID)
	}

	return nil
}

// ListPlaylists returns all favourite playlists of a user
func (r *FavouriteRepository) ListPlaylists(ctx context.Context, userID int64) ([]*models.FavouritePlaylist, error) {
	query := `
		SELECT id, user_id, title, url, count, uploader, added_in
		FROM favourite_playlists
		WHERE user_id = $1
		ORDER BY added_in, id
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite playlists for user %d: %w", userID, err)
	}
	defer rows.Close()

	var playlists []*models.FavouritePlaylist
	for rows.Next() {
		var playlist models.FavouritePlaylist
		err := rows.Scan(
			&playlist.ID,
			&playlist.UserID,
			&playlist.Title,
			&playlist.URL,
			&playlist.Count,
			&playlist.Uploader,
			&playlist.AddedIn,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favourite playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favourite playlists: %w", err)
	}

	return playlists, nil
}
