package service

import (
	"context"

	"sage/events"
	"sage/models"
)

// OwnerRepository defines the interface for owner allowlist data access
type OwnerRepository interface {
	// GetByID retrieves an owner by ID; nil result means not found
	GetByID(ctx context.Context, ownerID int64) (*models.Owner, error)

	// Create inserts a new owner allowlist entry
	Create(ctx context.Context, owner *models.Owner) error

	// Delete removes an owner allowlist entry
	Delete(ctx context.Context, ownerID int64) error

	// GetAll returns all owners
	GetAll(ctx context.Context) ([]*models.Owner, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID; nil result means not found
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// Create inserts a new user row
	Create(ctx context.Context, user *models.User) error

	// Update updates a user's profile fields
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user row, cascading to config and favourites
	Delete(ctx context.Context, userID int64) error

	// GetAll returns all users
	GetAll(ctx context.Context) ([]*models.User, error)
}

// UserConfigRepository defines the interface for user preference data access
type UserConfigRepository interface {
	// GetByUserID retrieves a user's config; nil result means no row yet
	GetByUserID(ctx context.Context, userID int64) (*models.UserConfig, error)

	// GetOrCreate retrieves a user's config or lazily creates the default row
	GetOrCreate(ctx context.Context, userID int64) (*models.UserConfig, error)

	// Upsert writes a user's config, creating the row if needed
	Upsert(ctx context.Context, config *models.UserConfig) error
}

// GuildRepository defines the interface for guild data access
type GuildRepository interface {
	// GetByID retrieves a guild by ID; nil result means not found
	GetByID(ctx context.Context, guildID int64) (*models.Guild, error)

	// Create inserts a new guild row
	Create(ctx context.Context, guild *models.Guild) error

	// Update updates a guild's name and icon
	Update(ctx context.Context, guild *models.Guild) error

	// Delete removes a guild row, cascading to config and junction rows
	Delete(ctx context.Context, guildID int64) error

	// GetAll returns all guilds
	GetAll(ctx context.Context) ([]*models.Guild, error)
}

// GuildConfigRepository defines the interface for guild config data access
type GuildConfigRepository interface {
	// GetOrCreate retrieves a guild's config or creates the default row
	GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// Update writes a guild's config
	Update(ctx context.Context, config *models.GuildConfig) error
}

// FavouriteRepository defines the interface for favourite data access
type FavouriteRepository interface {
	// AddTrack inserts a favourite track
	AddTrack(ctx context.Context, track *models.FavouriteTrack) error

	// RemoveTrack deletes a user's favourite track by URL
	RemoveTrack(ctx context.Context, userID int64, url string) error

	// ListTracks returns all favourite tracks of a user
	ListTracks(ctx context.Context, userID int64) ([]*models.FavouriteTrack, error)

	// AddPlaylist inserts a favourite playlist
	AddPlaylist(ctx context.Context, playlist *models.FavouritePlaylist) error

	// RemovePlaylist deletes a user's favourite playlist by URL
	RemovePlaylist(ctx context.Context, userID int64, url string) error

	// ListPlaylists returns all favourite playlists of a user
	ListPlaylists(ctx context.Context, userID int64) ([]*models.FavouritePlaylist, error)
}

// MembershipRepository defines the interface for the three guild-to-user
// reference sets (members, admins, blacklist)
type MembershipRepository interface {
	// Add inserts a (guild, user) pair; re-adding is a no-op
	Add(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error

	// Remove deletes a (guild, user) pair; removing an absent pair is a no-op
	Remove(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error

	// Exists reports whether the pair is present in the relation
	Exists(ctx context.Context, relation models.GuildRelation, guildID, userID int64) (bool, error)

	// ListUserIDs returns the IDs of all users in the relation for a guild
	ListUserIDs(ctx context.Context, relation models.GuildRelation, guildID int64) ([]int64, error)

	// ListGuildIDs returns the IDs of all guilds holding the user in the relation
	ListGuildIDs(ctx context.Context, relation models.GuildRelation, userID int64) ([]int64, error)
}

// UserService defines the interface for user operations
type UserService interface {
	// GetOrCreateUser retrieves an existing user or creates one on first
	// observation. A freshly created user with no relation, favourite or
	// preference flag does not survive its own commit; callers normally
	// reach users through the guild or favourite operations, which bundle
	// the referencing write into the same transaction.
	GetOrCreateUser(ctx context.Context, userID int64, displayName string) (*models.User, error)

	// GetUser retrieves a user by ID; nil result means not found
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// UpdateProfile updates a user's display name, global name and avatar
	UpdateProfile(ctx context.Context, user *models.User) error

	// SetPreferences writes a user's preference flags. The values pass
	// through NormalizeFlag, so integers and driver-native representations
	// are accepted.
	SetPreferences(ctx context.Context, userID int64, translatePrivate, factCheckPrivate any) (*models.UserConfig, error)

	// GetPreferences returns a user's preference flags, defaulting both to
	// false when no config row exists
	GetPreferences(ctx context.Context, userID int64) (*models.UserConfig, error)

	// DeleteUser removes a user and everything the user owns
	DeleteUser(ctx context.Context, userID int64) error
}

// GuildService defines the interface for guild operations
type GuildService interface {
	// GetOrCreateGuild retrieves an existing guild or creates one on first
	// observation
	GetOrCreateGuild(ctx context.Context, guildID int64, guildName string) (*models.Guild, error)

	// GetGuild retrieves a guild by ID; nil result means not found
	GetGuild(ctx context.Context, guildID int64) (*models.Guild, error)

	// UpdateGuild updates a guild's name and icon
	UpdateGuild(ctx context.Context, guild *models.Guild) error

	// DeleteGuild removes a guild; its config and junction rows go with it
	// and users left unreferenced are reclaimed in the same transaction
	DeleteGuild(ctx context.Context, guildID int64) error

	// GetConfig returns a guild's config, creating the default row if needed
	GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// UpdateAutoRole updates the auto-role feature settings. The active
	// flag passes through NormalizeFlag.
	UpdateAutoRole(ctx context.Context, guildID int64, active any, roleID *int64, roleName *string) (*models.GuildConfig, error)

	// UpdateWelcome updates the welcome message feature settings. The
	// active flag passes through NormalizeFlag; showPfp must be 0, 1 or 2.
	UpdateWelcome(ctx context.Context, guildID int64, update WelcomeUpdate) (*models.GuildConfig, error)

	// AddRelation records a user in one of the guild's reference sets,
	// creating the user row on first observation
	AddRelation(ctx context.Context, relation models.GuildRelation, guildID, userID int64, displayName string) error

	// RemoveRelation removes a user from one of the guild's reference sets
	RemoveRelation(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error

	// ListRelation returns the users in one of the guild's reference sets
	ListRelation(ctx context.Context, relation models.GuildRelation, guildID int64) ([]*models.User, error)
}

// WelcomeUpdate carries the welcome message settings for UpdateWelcome.
// Active is loosely typed; it passes through NormalizeFlag.
type WelcomeUpdate struct {
	Active           any
	ChannelID        *int64
	ChannelName      *string
	EmbedTitle       *string
	EmbedDescription *string
	EmbedColour      *string
	ShowPfp          int
}

// FavouriteService defines the interface for favourite operations
type FavouriteService interface {
	// AddTrack saves a favourite track for a user, creating the user row
	// on first observation
	AddTrack(ctx context.Context, userID int64, displayName string, track *models.FavouriteTrack) error

	// RemoveTrack deletes a user's favourite track by URL
	RemoveTrack(ctx context.Context, userID int64, url string) error

	// ListTracks returns all favourite tracks of a user
	ListTracks(ctx context.Context, userID int64) ([]*models.FavouriteTrack, error)

	// AddPlaylist saves a favourite playlist for a user, creating the user
	// row on first observation
	AddPlaylist(ctx context.Context, userID int64, displayName string, playlist *models.FavouritePlaylist) error

	// RemovePlaylist deletes a user's favourite playlist by URL
	RemovePlaylist(ctx context.Context, userID int64, url string) error

	// ListPlaylists returns all favourite playlists of a user
	ListPlaylists(ctx context.Context, userID int64) ([]*models.FavouritePlaylist, error)
}

// OwnerService defines the interface for the owner allowlist
type OwnerService interface {
	// AddOwner inserts an owner allowlist entry
	AddOwner(ctx context.Context, ownerID int64, ownerName string) error

	// RemoveOwner deletes an owner allowlist entry
	RemoveOwner(ctx context.Context, ownerID int64) error

	// IsOwner reports whether the ID is on the allowlist
	IsOwner(ctx context.Context, ownerID int64) (bool, error)

	// ListOwners returns all allowlist entries
	ListOwners(ctx context.Context) ([]*models.Owner, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations.
// Commit runs the orphan reclamation sweep inside the transaction before
// finalizing it; a sweep failure refuses the commit.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit sweeps for orphaned users and commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	OwnerRepository() OwnerRepository
	UserRepository() UserRepository
	UserConfigRepository() UserConfigRepository
	GuildRepository() GuildRepository
	GuildConfigRepository() GuildConfigRepository
	FavouriteRepository() FavouriteRepository
	MembershipRepository() MembershipRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
