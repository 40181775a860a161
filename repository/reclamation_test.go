package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sage/events"
	"sage/models"
	"sage/repository/testutil"
	"sage/service"
)

// countUsers reads the user table outside any unit of work
func countUsers(t *testing.T, testDB *testutil.TestDatabase) int {
	t.Helper()
	var count int
	err := testDB.DB.Pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM users`).Scan(&count)
	require.NoError(t, err)
	return count
}

// userExists reads a single user row outside any unit of work
func userExists(t *testing.T, testDB *testutil.TestDatabase, userID int64) bool {
	t.Helper()
	var exists bool
	err := testDB.DB.Pool.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists)
	require.NoError(t, err)
	return exists
}

// seedGuild creates a guild directly, outside any unit of work, so the
// sweep under test only sees the writes each test stages itself.
func seedGuild(t *testing.T, testDB *testutil.TestDatabase, guildID int64) {
	t.Helper()
	_, err := testDB.DB.Pool.Exec(context.Background(),
		`INSERT INTO guilds (guild_id, guild_name) VALUES ($1, $2)`,
		guildID, "test guild")
	require.NoError(t, err)
}

func TestReclamation_UnreferencedUserIsSwept(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	// A user created with no reference at all does not survive its own
	// transaction's commit.
	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	err := uow.UserRepository().Create(ctx, testutil.CreateTestUser(100, "ghost"))
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	assert.False(t, userExists(t, testDB, 100))
	assert.Equal(t, 0, countUsers(t, testDB))
}

func TestReclamation_KeepCriteria(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	seedGuild(t, testDB, 1)

	tests := []struct {
		name   string
		userID int64
		keep   func(t *testing.T, uow service.UnitOfWork, userID int64)
	}{
		{
			name:   "guild member",
			userID: 201,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 1, userID))
			},
		},
		{
			name:   "guild admin",
			userID: 202,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationAdmin, 1, userID))
			},
		},
		{
			name:   "blacklist entry only",
			userID: 203,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationBlacklist, 1, userID))
			},
		},
		{
			name:   "favourite track",
			userID: 204,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				require.NoError(t, uow.FavouriteRepository().AddTrack(ctx, testutil.CreateTestTrack(userID, "https://example.com/t1")))
			},
		},
		{
			name:   "favourite playlist",
			userID: 205,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				require.NoError(t, uow.FavouriteRepository().AddPlaylist(ctx, testutil.CreateTestPlaylist(userID, "https://example.com/p1", 3)))
			},
		},
		{
			name:   "preference flag set",
			userID: 206,
			keep: func(t *testing.T, uow service.UnitOfWork, userID int64) {
				config := &models.UserConfig{UserID: userID}
				config.SetTranslatePrivate(true)
				require.NoError(t, uow.UserConfigRepository().Upsert(ctx, config))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := uowFactory.Create()
			require.NoError(t, uow.Begin(ctx))
			defer uow.Rollback()

			require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(tt.userID, tt.name)))
			tt.keep(t, uow, tt.userID)
			require.NoError(t, uow.Commit())

			assert.True(t, userExists(t, testDB, tt.userID), "user should survive the sweep")
		})
	}
}

func TestReclamation_DefaultConfigDoesNotKeep(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	// A config row whose flags are all default is not a reference. The
	// sweep removes the user and the cascade takes the config row with it.
	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(300, "defaults")))
	_, err := uow.UserConfigRepository().GetOrCreate(ctx, 300)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	assert.False(t, userExists(t, testDB, 300))

	var configCount int
	err = testDB.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM user_config WHERE user_id = $1`, 300).Scan(&configCount)
	require.NoError(t, err)
	assert.Equal(t, 0, configCount, "config row should cascade with the user")
}

func TestReclamation_RemovingLastReferenceSweepsUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	seedGuild(t, testDB, 1)

	// Establish a user held only by a blacklist entry
	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(400, "banned")))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationBlacklist, 1, 400))
	require.NoError(t, uow.Commit())
	require.True(t, userExists(t, testDB, 400))

	// Unbanning removes the last reference; the same commit sweeps the user
	uow = uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	require.NoError(t, uow.MembershipRepository().Remove(ctx, models.RelationBlacklist, 1, 400))
	require.NoError(t, uow.Commit())

	assert.False(t, userExists(t, testDB, 400))
}

func TestReclamation_ClearingFlagsSweepsUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())

	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(500, "private")))
	config := &models.UserConfig{UserID: 500}
	config.SetTranslatePrivate(1)
	config.SetFactCheckPrivate("on")
	require.NoError(t, uow.UserConfigRepository().Upsert(ctx, config))
	require.NoError(t, uow.Commit())
	require.True(t, userExists(t, testDB, 500))

	// Clearing both flags drops the user's last keep criterion
	uow = uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	require.NoError(t, uow.UserConfigRepository().Upsert(ctx, &models.UserConfig{UserID: 500}))
	require.NoError(t, uow.Commit())

	assert.False(t, userExists(t, testDB, 500))
}

func TestReclamation_GuildDeleteCascadesAndSweeps(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	seedGuild(t, testDB, 1)
	seedGuild(t, testDB, 2)

	// User 600 is only in guild 1; user 601 is in both guilds
	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(600, "single")))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(601, "double")))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 1, 600))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 1, 601))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 2, 601))
	require.NoError(t, uow.Commit())

	// Deleting guild 1 cascades its junction rows; the sweep in the same
	// transaction reclaims the user whose only reference it was
	uow = uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	require.NoError(t, uow.GuildRepository().Delete(ctx, 1))
	require.NoError(t, uow.Commit())

	assert.False(t, userExists(t, testDB, 600))
	assert.True(t, userExists(t, testDB, 601))
}

func TestReclamation_Idempotent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	seedGuild(t, testDB, 1)

	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(700, "kept")))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 1, 700))
	require.NoError(t, uow.Commit())

	before := countUsers(t, testDB)

	// A commit with no writes finds the same orphan set: none
	uow = uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	require.NoError(t, uow.Commit())

	assert.Equal(t, before, countUsers(t, testDB))
}

func TestReclamation_RollbackUndoesSweep(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	uowFactory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	seedGuild(t, testDB, 1)

	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(800, "member")))
	require.NoError(t, uow.MembershipRepository().Add(ctx, models.RelationMember, 1, 800))
	require.NoError(t, uow.Commit())

	// Remove the reference but roll back instead of committing
	uow = uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.MembershipRepository().Remove(ctx, models.RelationMember, 1, 800))
	require.NoError(t, uow.Rollback())

	assert.True(t, userExists(t, testDB, 800), "rollback should restore the reference and the user")
}

func TestReclamation_EmitsEventPerReclaimedUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	reclaimed := make(chan events.UserReclaimedEvent, 10)
	bus.Subscribe(events.EventTypeUserReclaimed, func(ctx context.Context, event events.Event) {
		reclaimed <- event.(events.UserReclaimedEvent)
	})

	uowFactory := NewUnitOfWorkFactory(testDB.DB, bus)

	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(900, "ghost")))
	require.NoError(t, uow.Commit())

	select {
	case ev := <-reclaimed:
		assert.Equal(t, int64(900), ev.UserID)
		assert.Equal(t, "ghost", ev.DisplayName)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a user reclaimed event after commit")
	}
}

func TestReclamation_NoEventOnRollback(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	reclaimed := make(chan events.UserReclaimedEvent, 10)
	bus.Subscribe(events.EventTypeUserReclaimed, func(ctx context.Context, event events.Event) {
		reclaimed <- event.(events.UserReclaimedEvent)
	})

	uowFactory := NewUnitOfWorkFactory(testDB.DB, bus)

	uow := uowFactory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.UserRepository().Create(ctx, testutil.CreateTestUser(901, "ghost")))
	require.NoError(t, uow.Rollback())

	select {
	case ev := <-reclaimed:
		t.Fatalf("unexpected reclaimed event after rollback: %+v", ev)
	case <-time.After(500 * time.Millisecond):
	}
}
