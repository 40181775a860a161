package repository

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sage/events"
)

// orphanQuery selects every user with no remaining reason to persist: not
// in any guild relation, owning no favourites, and without a preference
// flag set. A user with no config row at all counts as all-default and is
// eligible. Blacklist presence alone keeps a user, so ban history stays
// resolvable to a display name.
const orphanQuery = `
	SELECT u.user_id, u.display_name
	FROM users u
	WHERE NOT EXISTS (SELECT 1 FROM guild_members gm WHERE gm.user_id = u.user_id)
	  AND NOT EXISTS (SELECT 1 FROM guild_admins ga WHERE ga.user_id = u.user_id)
	  AND NOT EXISTS (SELECT 1 FROM guild_blacklist gb WHERE gb.user_id = u.user_id)
	  AND NOT EXISTS (SELECT 1 FROM favourite_tracks ft WHERE ft.user_id = u.user_id)
	  AND NOT EXISTS (SELECT 1 FROM favourite_playlists fp WHERE fp.user_id = u.user_id)
	  AND NOT EXISTS (
		SELECT 1 FROM user_config uc
		WHERE uc.user_id = u.user_id
		  AND (uc.translate_private OR uc.fact_check_private)
	  )
`

// reclaimOrphanedUsers deletes every user outside the keep set. It runs
// once per unit of work, after the transaction's writes and before commit,
// so it observes the post-write state and its deletions roll back with the
// transaction. The predicate is a full scan of the current state rather
// than a reference count, so the sweep produces the same orphan set no
// matter how many writes preceded it.
func reclaimOrphanedUsers(ctx context.Context, q queryable, bus *events.TransactionalBus) error {
	rows, err := q.Query(ctx, orphanQuery)
	if err != nil {
		return fmt.Errorf("failed to query orphaned users: %w", err)
	}
	defer rows.Close()

	type orphan struct {
		id   int64
		name string
	}

	var orphans []orphan
	for rows.Next() {
		var o orphan
		if err := rows.Scan(&o.id, &o.name); err != nil {
			return fmt.Errorf("failed to scan orphaned user: %w", err)
		}
		orphans = append(orphans, o)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate orphaned users: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	ids := make([]int64, len(orphans))
	for i, o := range orphans {
		ids[i] = o.id
	}

	// Config rows go with the user via the cascade. Favourites are empty by
	// construction, since owning one is part of the keep predicate.
	if _, err := q.Exec(ctx, `DELETE FROM users WHERE user_id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("failed to delete orphaned users: %w", err)
	}

	for _, o := range orphans {
		log.WithFields(log.Fields{
			"userID":      o.id,
			"displayName": o.name,
		}).Info("Reclaimed orphaned user")

		if bus != nil {
			bus.Publish(events.UserReclaimedEvent{
				UserID:      o.id,
				DisplayName: o.name,
			})
		}
	}

	log.WithField("count", len(orphans)).Debug("Reclamation sweep completed")

	return nil
}
