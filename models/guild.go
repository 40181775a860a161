package models

// Guild represents a Discord guild known to the system
type Guild struct {
	GuildID      int64   `db:"guild_id"`
	GuildName    string  `db:"guild_name"`
	GuildIconURL *string `db:"guild_icon_url"`
}

// GuildConfig holds per-guild feature settings, one row per guild.
// Rows are created lazily on first access.
type GuildConfig struct {
	GuildID int64 `db:"guild_id"`

	AutoRoleActive bool    `db:"auto_role_active"`
	AutoRoleID     *int64  `db:"auto_role_id"`
	AutoRoleName   *string `db:"auto_role_name"`

	WelcomeActive           bool    `db:"welcome_active"`
	WelcomeChannelID        *int64  `db:"welcome_channel_id"`
	WelcomeChannelName      *string `db:"welcome_channel_name"`
	WelcomeEmbedTitle       *string `db:"welcome_embed_title"`
	WelcomeEmbedDescription *string `db:"welcome_embed_description"`
	WelcomeEmbedColour      *string `db:"welcome_embed_colour"`
	// WelcomeShowPfp selects whose profile picture the welcome embed shows.
	// Constrained to 0, 1 or 2 by a check constraint.
	WelcomeShowPfp int `db:"welcome_show_pfp"`
}

// SetAutoRoleActive assigns the auto-role flag through NormalizeFlag.
func (c *GuildConfig) SetAutoRoleActive(v any) {
	c.AutoRoleActive = NormalizeFlag(v)
}

// SetWelcomeActive assigns the welcome flag through NormalizeFlag.
func (c *GuildConfig) SetWelcomeActive(v any) {
	c.WelcomeActive = NormalizeFlag(v)
}
