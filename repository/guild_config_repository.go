package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sage/database"
	"sage/models"
)

const guildConfigColumns = `
	guild_id,
	auto_role_active, auto_role_id, auto_role_name,
	welcome_active, welcome_channel_id, welcome_channel_name,
	welcome_embed_title, welcome_embed_description, welcome_embed_colour,
	welcome_show_pfp
`

// GuildConfigRepository implements the GuildConfigRepository interface
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// newGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func newGuildConfigRepositoryWithTx(tx queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

// GetOrCreate retrieves a guild's config or creates the default row if none
// exists yet. The owning guild must already exist.
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	query := `SELECT ` + guildConfigColumns + ` FROM guild_config WHERE guild_id = $1`

	config, err := scanGuildConfig(r.q.QueryRow(ctx, query, guildID))
	if err == nil {
		return config, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get guild config for guild %d: %w", guildID, err)
	}

	insertQuery := `
		INSERT INTO guild_config (guild_id)
		VALUES ($1)
		RETURNING ` + guildConfigColumns

	config, err = scanGuildConfig(r.q.QueryRow(ctx, insertQuery, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create guild config for guild %d: %w", guildID, err)
	}

	return config, nil
}

// Update writes a guild's config. The row must already exist; use
// GetOrCreate first for lazily created configs.
func (r *GuildConfigRepository) Update(ctx context.Context, config *models.GuildConfig) error {
	query := `
		UPDATE guild_config
		SET auto_role_active = $2,
		    auto_role_id = $3,
		    auto_role_name = $4,
		    welcome_active = $5,
		    welcome_channel_id = $6,
		    welcome_channel_name = $7,
		    welcome_embed_title = $8,
		    welcome_embed_description = $9,
		    welcome_embed_colour = $10,
		    welcome_show_pfp = $11
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		config.GuildID,
		config.AutoRoleActive,
		config.AutoRoleID,
		config.AutoRoleName,
		config.WelcomeActive,
		config.WelcomeChannelID,
		config.WelcomeChannelName,
		config.WelcomeEmbedTitle,
		config.WelcomeEmbedDescription,
		config.WelcomeEmbedColour,
		config.WelcomeShowPfp,
	)
	if err != nil {
		return fmt.Errorf("failed to update guild config for guild %d: %w", config.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("guild config for guild %d not found", config.GuildID)
	}

	return nil
}

// scanGuildConfig scans a guild config row, coercing the two flag columns
// through NormalizeFlag.
func scanGuildConfig(row pgx.Row) (*models.GuildConfig, error) {
	var config models.GuildConfig
	var autoRoleActive, welcomeActive any

	err := row.Scan(
		&config.GuildID,
		&autoRoleActive,
		&config.AutoRoleID,
		&config.AutoRoleName,
		&welcomeActive,
		&config.WelcomeChannelID,
		&config.WelcomeChannelName,
		&config.WelcomeEmbedTitle,
		&config.WelcomeEmbedDescription,
		&config.WelcomeEmbedColour,
		&config.WelcomeShowPfp,
	)
	if err != nil {
		return nil, err
	}

	config.SetAutoRoleActive(autoRoleActive)
	config.SetWelcomeActive(welcomeActive)
	return &config, nil
}
