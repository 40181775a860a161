package database

import (
	"context"
	"fmt"
	"strings"

	"sage/models"
)

// requiredTables lists every schema section the persistence layer depends
// on. The list is declared statically and checked against the live catalog
// at startup rather than discovered by reflection.
var requiredTables = []string{
	"owners",
	"users",
	"user_config",
	"favourite_tracks",
	"favourite_playlists",
	"guilds",
	"guild_config",
	"guild_members",
	"guild_admins",
	"guild_blacklist",
}

// VerifySchema checks that every required table, and every column listed in
// models.NormalizedFlagColumns, exists in the connected database. It
// returns an error naming the first missing piece.
func (db *DB) VerifySchema(ctx context.Context) error {
	const tableQuery = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`

	for _, table := range requiredTables {
		var exists bool
		if err := db.QueryRow(ctx, tableQuery, table).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("required table %s is missing; run migrations first", table)
		}
	}

	const columnQuery = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = $1 AND column_name = $2
		)
	`

	for _, flag := range models.NormalizedFlagColumns {
		table, column, ok := strings.Cut(flag, ".")
		if !ok {
			return fmt.Errorf("malformed normalized flag column %q", flag)
		}
		var exists bool
		if err := db.QueryRow(ctx, columnQuery, table, column).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check column %s: %w", flag, err)
		}
		if !exists {
			return fmt.Errorf("normalized flag column %s is missing", flag)
		}
	}

	return nil
}
