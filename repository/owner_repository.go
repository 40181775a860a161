package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sage/database"
	"sage/models"
)

// OwnerRepository implements the OwnerRepository interface
type OwnerRepository struct {
	q queryable
}

// NewOwnerRepository creates a new owner repository
func NewOwnerRepository(db *database.DB) *OwnerRepository {
	return &OwnerRepository{q: db.Pool}
}

// newOwnerRepositoryWithTx creates a new owner repository with a transaction
func newOwnerRepositoryWithTx(tx queryable) *OwnerRepository {
	return &OwnerRepository{q: tx}
}

// GetByID retrieves an owner by ID. Returns nil without error when absent.
func (r *OwnerRepository) GetByID(ctx context.Context, ownerID int64) (*models.Owner, error) {
	query := `
		SELECT owner_id, owner_name
		FROM owners
		WHERE owner_id = $1
	`

	var owner models.Owner
	err := r.q.QueryRow(ctx, query, ownerID).Scan(&owner.OwnerID, &owner.OwnerName)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get owner %d: %w", ownerID, err)
	}

	return &owner, nil
}

// Create inserts a new owner allowlist entry
func (r *OwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	query := `
		INSERT INTO owners (owner_id, owner_name)
		VALUES ($1, $2)
	`

	if _, err := r.q.Exec(ctx, query, owner.OwnerID, owner.OwnerName); err != nil {
		return fmt.Errorf("failed to create owner %d: %w", owner.OwnerID, err)
	}

	return nil
}

// Delete removes an owner allowlist entry
func (r *OwnerRepository) Delete(ctx context.Context, ownerID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM owners WHERE owner_id = $1`, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete owner %d: %w", ownerID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("owner %d not found", ownerID)
	}

	return nil
}

// GetAll returns all owners
func (r *OwnerRepository) GetAll(ctx context.Context) ([]*models.Owner, error) {
	rows, err := r.q.Query(ctx, `SELECT owner_id, owner_name FROM owners ORDER BY owner_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get owners: %w", err)
	}
	defer rows.Close()

	var owners []*models.Owner
	for rows.Next() {
		var owner models.Owner
		if err := rows.Scan(&owner.OwnerID, &owner.OwnerName); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, &owner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate owners: %w", err)
	}

	return owners, nil
}
