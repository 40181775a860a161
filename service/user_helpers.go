package service

import (
	"context"
	"fmt"

	"sage/models"
)

// getOrCreateUser fetches or creates the user row within the given unit of
// work, so the caller's referencing write lands in the same transaction as
// the creation. Without a referencing write the new row does not survive
// the commit's reclamation sweep.
func getOrCreateUser(ctx context.Context, uow UnitOfWork, userID int64, displayName string) (*models.User, error) {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{
		UserID:      userID,
		DisplayName: displayName,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
