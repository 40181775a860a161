package service

import (
	"context"
	"fmt"

	"sage/models"
)

// ownerService implements the OwnerService interface
type ownerService struct {
	uowFactory UnitOfWorkFactory
}

// NewOwnerService creates a new owner service
func NewOwnerService(uowFactory UnitOfWorkFactory) OwnerService {
	return &ownerService{
		uowFactory: uowFactory,
	}
}

// AddOwner inserts an owner allowlist entry
func (s *ownerService) AddOwner(ctx context.Context, ownerID int64, ownerName string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	owner := &models.Owner{
		OwnerID:   ownerID,
		OwnerName: ownerName,
	}
	if err := uow.OwnerRepository().Create(ctx, owner); err != nil {
		return fmt.Errorf("failed to add owner: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveOwner deletes an owner allowlist entry
func (s *ownerService) RemoveOwner(ctx context.Context, ownerID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.OwnerRepository().Delete(ctx, ownerID); err != nil {
		return fmt.Errorf("failed to remove owner: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsOwner reports whether the ID is on the allowlist
func (s *ownerService) IsOwner(ctx context.Context, ownerID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	owner, err := uow.OwnerRepository().GetByID(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("failed to get owner: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return owner != nil, nil
}

// ListOwners returns all allowlist entries
func (s *ownerService) ListOwners(ctx context.Context) ([]*models.Owner, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	owners, err := uow.OwnerRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return owners, nil
}
