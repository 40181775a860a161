package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sage/database"
	"sage/models"
)

// UserConfigRepository implements the UserConfigRepository interface
type UserConfigRepository struct {
	q queryable
}

// NewUserConfigRepository creates a new user config repository
func NewUserConfigRepository(db *database.DB) *UserConfigRepository {
	return &UserConfigRepository{q: db.Pool}
}

// newUserConfigRepositoryWithTx creates a new user config repository with a transaction
func newUserConfigRepositoryWithTx(tx queryable) *UserConfigRepository {
	return &UserConfigRepository{q: tx}
}

// GetByUserID retrieves a user's config. Returns nil without error when no
// config row exists yet; a missing row behaves as all-default flags.
func (r *UserConfigRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserConfig, error) {
	query := `
		SELECT user_id, translate_private, fact_check_private
		FROM user_config
		WHERE user_id = $1
	`

	config, err := scanUserConfig(r.q.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user config for user %d: %w", userID, err)
	}

	return config, nil
}

// GetOrCreate retrieves a user's config or lazily creates the default row.
// The owning user must already exist; creating a config for a missing user
// is a foreign-key violation.
func (r *UserConfigRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserConfig, error) {
	config, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if config != nil {
		return config, nil
	}

	insertQuery := `
		INSERT INTO user_config (user_id)
		VALUES ($1)
		RETURNING user_id, translate_private, fact_check_private
	`

	config, err = scanUserConfig(r.q.QueryRow(ctx, insertQuery, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to create user config for user %d: %w", userID, err)
	}

	return config, nil
}

// Upsert writes a user's config, creating the row if needed.
func (r *UserConfigRepository) Upsert(ctx context.Context, config *models.UserConfig) error {
	query := `
		INSERT INTO user_config (user_id, translate_private, fact_check_private)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET translate_private = EXCLUDED.translate_private,
		    fact_check_private = EXCLUDED.fact_check_private
	`

	_, err := r.q.Exec(ctx, query,
		config.UserID,
		config.TranslatePrivate,
		config.FactCheckPrivate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user config for user %d: %w", config.UserID, err)
	}

	return nil
}

// scanUserConfig scans a user config row. The flag columns are read into
// loose values and passed through NormalizeFlag, so a driver handing back
// 0/1 instead of booleans still yields strict booleans.
func scanUserConfig(row pgx.Row) (*models.UserConfig, error) {
	var config models.UserConfig
	var translate, factCheck any

	if err := row.Scan(&config.UserID, &translate, &factCheck); err != nil {
		return nil, err
	}

	config.SetTranslatePrivate(translate)
	config.SetFactCheckPrivate(factCheck)
	return &config, nil
}
