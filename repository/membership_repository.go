package repository

import (
	"context"
	"fmt"

	"sage/database"
	"sage/models"
)

// MembershipRepository implements the MembershipRepository interface over
// the three guild-to-user junction tables.
type MembershipRepository struct {
	q queryable
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *database.DB) *MembershipRepository {
	return &MembershipRepository{q: db.Pool}
}

// newMembershipRepositoryWithTx creates a new membership repository with a transaction
func newMembershipRepositoryWithTx(tx queryable) *MembershipRepository {
	return &MembershipRepository{q: tx}
}

// relationTable maps a relation to its junction table. Table names are
// fixed here rather than interpolated from input.
func relationTable(relation models.GuildRelation) (string, error) {
	switch relation {
	case models.RelationMember:
		return "guild_members", nil
	case models.RelationAdmin:
		return "guild_admins", nil
	case models.RelationBlacklist:
		return "guild_blacklist", nil
	}
	return "", fmt.Errorf("unknown guild relation %q", relation)
}

// Add inserts a (guild, user) pair into the relation's junction table.
// Re-adding an existing pair is a no-op; join and promote events from the
// front-end can be redelivered.
func (r *MembershipRepository) Add(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error {
	table, err := relationTable(relation)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (guild_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id, user_id) DO NOTHING
	`, table)

	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return fmt.Errorf("failed to add user %d to %s of guild %d: %w", userID, table, guildID, err)
	}

	return nil
}

// Remove deletes a (guild, user) pair from the relation's junction table.
// Removing a pair that is not present is a no-op.
func (r *MembershipRepository) Remove(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error {
	table, err := relationTable(relation)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE guild_id = $1 AND user_id = $2`, table)

	if _, err := r.q.Exec(ctx, query, guildID, userID); err != nil {
		return fmt.Errorf("failed to remove user %d from %s of guild %d: %w", userID, table, guildID, err)
	}

	return nil
}

// Exists reports whether the (guild, user) pair is present in the relation
func (r *MembershipRepository) Exists(ctx context.Context, relation models.GuildRelation, guildID, userID int64) (bool, error) {
	table, err := relationTable(relation)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE guild_id = $1 AND user_id = $2)
	`, table)

	var exists bool
	if err := r.q.QueryRow(ctx, query, guildID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s for guild %d user %d: %w", table, guildID, userID, err)
	}

	return exists, nil
}

// ListUserIDs returns the IDs of all users in the relation for a guild
func (r *MembershipRepository) ListUserIDs(ctx context.Context, relation models.GuildRelation, guildID int64) ([]int64, error) {
	table, err := relationTable(relation)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE guild_id = $1 ORDER BY user_id`, table)

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s for guild %d: %w", table, guildID, err)
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user ID: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	return userIDs, nil
}

// ListGuildIDs returns the IDs of all guilds holding the user in the relation
func (r *MembershipRepository) ListGuildIDs(ctx context.Context, relation models.GuildRelation, userID int64) ([]int64, error) {
	table, err := relationTable(relation)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT guild_id FROM %s WHERE user_id = $1 ORDER BY guild_id`, table)

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guilds in %s for user %d: %w", table, userID, err)
	}
	defer rows.Close()

	var guildIDs []int64
	for rows.Next() {
		var guildID int64
		if err := rows.Scan(&guildID); err != nil {
			return nil, fmt.Errorf("failed to scan guild ID: %w", err)
		}
		guildIDs = append(guildIDs, guildID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}

	return guildIDs, nil
}
