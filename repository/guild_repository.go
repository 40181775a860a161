package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sage/database"
	"sage/models"
)

// GuildRepository implements the GuildRepository interface
type GuildRepository struct {
	q queryable
}

// NewGuildRepository creates a new guild repository
func NewGuildRepository(db *database.DB) *GuildRepository {
	return &GuildRepository{q: db.Pool}
}

// newGuildRepositoryWithTx creates a new guild repository with a transaction
func newGuildRepositoryWithTx(tx queryable) *GuildRepository {
	return &GuildRepository{q: tx}
}

// GetByID retrieves a guild by its ID. Returns nil without error when absent.
func (r *GuildRepository) GetByID(ctx context.Context, guildID int64) (*models.Guild, error) {
	query := `
		SELECT guild_id, guild_name, guild_icon_url
		FROM guilds
		WHERE guild_id = $1
	`

	var guild models.Guild
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&guild.GuildID,
		&guild.GuildName,
		&guild.GuildIconURL,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild %d: %w", guildID, err)
	}

	return &guild, nil
}

// Create inserts a new guild row
func (r *GuildRepository) Create(ctx context.Context, guild *models.Guild) error {
	query := `
		INSERT INTO guilds (guild_id, guild_name, guild_icon_url)
		VALUES ($1, $2, $3)
	`

	_, err := r.q.Exec(ctx, query, guild.GuildID, guild.GuildName, guild.GuildIconURL)
	if err != nil {
		return fmt.Errorf("failed to create guild %d: %w", guild.GuildID, err)
	}

	return nil
}

// Update updates a guild's name and icon
func (r *GuildRepository) Update(ctx context.Context, guild *models.Guild) error {
	query := `
		UPDATE guilds
		SET guild_name = $2, guild_icon_url = $3
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query, guild.GuildID, guild.GuildName, guild.GuildIconURL)
	if err != nil {
		return fmt.Errorf("failed to update guild %d: %w", guild.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild %d not found", guild.GuildID)
	}

	return nil
}

// Delete removes a guild row. The store cascades the deletion to the
// guild's config and its junction rows; referenced users survive, though
// users left without any keep criterion are picked up by the reclamation
// sweep before the transaction commits.
func (r *GuildRepository) Delete(ctx context.Context, guildID int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM guilds WHERE guild_id = $1`, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete guild %d: %w", guildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild %d not found", guildID)
	}

	return nil
}

// GetAll returns all guilds
func (r *GuildRepository) GetAll(ctx context.Context) ([]*models.Guild, error) {
	query := `
		SELECT guild_id, guild_name, guild_icon_url
		FROM guilds
		ORDER BY guild_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all guilds: %w", err)
	}
	defer rows.Close()

	var guilds []*models.Guild
	for rows.Next() {
		var guild models.Guild
		if err := rows.Scan(&guild.GuildID, &guild.GuildName, &guild.GuildIconURL); err != nil {
			return nil, fmt.Errorf("failed to scan guild: %w", err)
		}
		guilds = append(guilds, &guild)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guilds: %w", err)
	}

	return guilds, nil
}
