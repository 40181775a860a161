package models

// User represents a Discord user known to the system.
//
// A user row only persists while something still references it: a guild
// membership, adminship or blacklist entry, a favourite, or a non-default
// preference flag. Users outside that keep set are removed by the orphan
// reclamation sweep when the transaction that orphaned them commits.
type User struct {
	UserID      int64   `db:"user_id"`
	DisplayName string  `db:"display_name"`
	GlobalName  *string `db:"global_name"`
	AvatarURL   *string `db:"avatar_url"`
}

// UserConfig holds per-user preference flags, one row per user.
// Rows are created lazily on the first preference write; a user with no
// config row behaves as if both flags were false.
type UserConfig struct {
	UserID           int64 `db:"user_id"`
	TranslatePrivate bool  `db:"translate_private"`
	FactCheckPrivate bool  `db:"fact_check_private"`
}

// SetTranslatePrivate assigns the flag through NormalizeFlag.
func (c *UserConfig) SetTranslatePrivate(v any) {
	c.TranslatePrivate = NormalizeFlag(v)
}

// SetFactCheckPrivate assigns the flag through NormalizeFlag.
func (c *UserConfig) SetFactCheckPrivate(v any) {
	c.FactCheckPrivate = NormalizeFlag(v)
}

// HasNonDefaultPreference reports whether any preference flag is set.
// A true flag is one of the criteria that keeps a user from being reclaimed.
func (c *UserConfig) HasNonDefaultPreference() bool {
	return c.TranslatePrivate || c.FactCheckPrivate
}
