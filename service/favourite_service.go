package service

import (
	"context"
	"fmt"

	"sage/events"
	"sage/models"
)

// favouriteService implements the FavouriteService interface
type favouriteService struct {
	uowFactory UnitOfWorkFactory
}

// NewFavouriteService creates a new favourite service
func NewFavouriteService(uowFactory UnitOfWorkFactory) FavouriteService {
	return &favouriteService{
		uowFactory: uowFactory,
	}
}

// AddTrack saves a favourite track for a user. The user row is created on
// first observation in the same transaction, so the favourite keeps it
// through the sweep.
func (s *favouriteService) AddTrack(ctx context.Context, userID int64, displayName string, track *models.FavouriteTrack) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if _, err := getOrCreateUser(ctx, uow, userID, displayName); err != nil {
		return err
	}

	track.UserID = userID
	if err := uow.FavouriteRepository().AddTrack(ctx, track); err != nil {
		return fmt.Errorf("failed to add favourite track: %w", err)
	}

	uow.EventBus().Publish(events.FavouriteAddedEvent{
		UserID: userID,
		Kind:   events.FavouriteKindTrack,
		URL:    track.URL,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveTrack deletes a user's favourite track. If the favourite was the
// user's last keep criterion the sweep reclaims the user row in the same
// transaction.
func (s *favouriteService) RemoveTrack(ctx context.Context, userID int64, url string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.FavouriteRepository().RemoveTrack(ctx, userID, url); err != nil {
		return fmt.Errorf("failed to remove favourite track: %w", err)
	}

	uow.EventBus().Publish(events.FavouriteRemovedEvent{
		UserID: userID,
		Kind:   events.FavouriteKindTrack,
		URL:    url,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListTracks returns all favourite tracks of a user
func (s *favouriteService) ListTracks(ctx context.Context, userID int64) ([]*models.FavouriteTrack, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	tracks, err := uow.FavouriteRepository().ListTracks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite tracks: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return tracks, nil
}

// AddPlaylist saves a favourite playlist for a user
func (s *favouriteService) AddPlaylist(ctx context.Context, userID int64, displayName string, playlist *models.FavouritePlaylist) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getOrCreateUser(ctx, uow, userID, displayName); err != nil {
		return err
	}

	playlist.UserID = userID
	if err := uow.FavouriteRepository().AddPlaylist(ctx, playlist); err != nil {
		return fmt.Errorf("failed to add favourite playlist: %w", err)
	}

	uow.EventBus().Publish(events.FavouriteAddedEvent{
		UserID: userID,
		Kind:   events.FavouriteKindPlaylist,
		URL:    playlist.URL,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemovePlaylist deletes a user's favourite playlist
func (s *favouriteService) RemovePlaylist(ctx context.Context, userID int64, url string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.FavouriteRepository().RemovePlaylist(ctx, userID, url); err != nil {
		return fmt.Errorf("failed to remove favourite playlist: %w", err)
	}

	uow.EventBus().Publish(events.FavouriteRemovedEvent{
		UserID: userID,
		Kind:   events.FavouriteKindPlaylist,
		URL:    url,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListPlaylists returns all favourite playlists of a user
func (s *favouriteService) ListPlaylists(ctx context.Context, userID int64) ([]*models.FavouritePlaylist, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	playlists, err := uow.FavouriteRepository().ListPlaylists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favourite playlists: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return playlists, nil
}
