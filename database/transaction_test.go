package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sage/repository/testutil"
)

func TestWithTransaction(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `INSERT INTO guilds (guild_id, guild_name) VALUES (1, 'one')`)
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM guilds`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rollback on error", func(t *testing.T) {
		failure := errors.New("nope")
		err := testDB.DB.WithTransaction(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `INSERT INTO guilds (guild_id, guild_name) VALUES (2, 'two')`); err != nil {
				return err
			}
			return failure
		})
		assert.ErrorIs(t, err, failure)

		var count int
		require.NoError(t, testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM guilds WHERE guild_id = 2`).Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestWithTransactionHook(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("hook sees staged writes", func(t *testing.T) {
		var seen int
		err := testDB.DB.WithTransactionHook(ctx,
			func(tx pgx.Tx) error {
				_, err := tx.Exec(ctx, `INSERT INTO guilds (guild_id, guild_name) VALUES (10, 'ten')`)
				return err
			},
			func(ctx context.Context, tx pgx.Tx) error {
				return tx.QueryRow(ctx, `SELECT COUNT(*) FROM guilds WHERE guild_id = 10`).Scan(&seen)
			},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, seen)
	})

	t.Run("hook error rolls everything back", func(t *testing.T) {
		failure := errors.New("hook refused")
		err := testDB.DB.WithTransactionHook(ctx,
			func(tx pgx.Tx) error {
				_, err := tx.Exec(ctx, `INSERT INTO guilds (guild_id, guild_name) VALUES (11, 'eleven')`)
				return err
			},
			func(ctx context.Context, tx pgx.Tx) error {
				return failure
			},
		)
		assert.ErrorIs(t, err, failure)

		var count int
		require.NoError(t, testDB.DB.QueryRow(ctx, `SELECT COUNT(*) FROM guilds WHERE guild_id = 11`).Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestVerifySchema(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	// Migrated database passes
	require.NoError(t, testDB.DB.VerifySchema(ctx))

	// A missing table is reported by name
	_, err := testDB.DB.Exec(ctx, `ALTER TABLE owners RENAME TO owners_gone`)
	require.NoError(t, err)

	err = testDB.DB.VerifySchema(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owners")
}
