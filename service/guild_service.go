package service

import (
	"context"
	"fmt"

	"sage/events"
	"sage/models"
)

// guildService implements the GuildService interface
type guildService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildService creates a new guild service
func NewGuildService(uowFactory UnitOfWorkFactory) GuildService {
	return &guildService{
		uowFactory: uowFactory,
	}
}

// GetOrCreateGuild retrieves an existing guild or creates a new one with a
// default config row alongside it.
func (s *guildService) GetOrCreateGuild(ctx context.Context, guildID int64, guildName string) (*models.Guild, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	guild, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing guild: %w", err)
	}

	if guild == nil {
		guild = &models.Guild{
			GuildID:   guildID,
			GuildName: guildName,
		}
		if err := uow.GuildRepository().Create(ctx, guild); err != nil {
			return nil, fmt.Errorf("failed to create guild: %w", err)
		}

		if _, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID); err != nil {
			return nil, fmt.Errorf("failed to create guild config: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return guild, nil
}

// GetGuild retrieves a guild by ID
func (s *guildService) GetGuild(ctx context.Context, guildID int64) (*models.Guild, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return guild, nil
}

// UpdateGuild updates a guild's name and icon
func (s *guildService) UpdateGuild(ctx context.Context, guild *models.Guild) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GuildRepository().Update(ctx, guild); err != nil {
		return fmt.Errorf("failed to update guild: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteGuild removes a guild. The store cascades to the guild's config
// and junction rows; users whose last reference was this guild are
// reclaimed by the sweep before the same transaction commits.
func (s *guildService) DeleteGuild(ctx context.Context, guildID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.GuildRepository().Delete(ctx, guildID); err != nil {
		return fmt.Errorf("failed to delete guild: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetConfig returns a guild's config, creating the default row if needed
func (s *guildService) GetConfig(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// UpdateAutoRole updates the auto-role feature settings
func (s *guildService) UpdateAutoRole(ctx context.Context, guildID int64, active any, roleID *int64, roleName *string) (*models.GuildConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SetAutoRoleActive(active)
	config.AutoRoleID = roleID
	config.AutoRoleName = roleName

	if err := uow.GuildConfigRepository().Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update guild config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// UpdateWelcome updates the welcome message feature settings
func (s *guildService) UpdateWelcome(ctx context.Context, guildID int64, update WelcomeUpdate) (*models.GuildConfig, error) {
	if update.ShowPfp < 0 || update.ShowPfp > 2 {
		return nil, fmt.Errorf("welcome show pfp mode must be 0, 1 or 2, got %d", update.ShowPfp)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	config.SetWelcomeActive(update.Active)
	config.WelcomeChannelID = update.ChannelID
	config.WelcomeChannelName = update.ChannelName
	config.WelcomeEmbedTitle = update.EmbedTitle
	config.WelcomeEmbedDescription = update.EmbedDescription
	config.WelcomeEmbedColour = update.EmbedColour
	config.WelcomeShowPfp = update.ShowPfp

	if err := uow.GuildConfigRepository().Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update guild config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// AddRelation records a user in one of the guild's reference sets. The
// user row is created on first observation, in the same transaction as the
// junction write, so it carries a keep criterion through the sweep.
func (s *guildService) AddRelation(ctx context.Context, relation models.GuildRelation, guildID, userID int64, displayName string) error {
	if !relation.Valid() {
		return fmt.Errorf("unknown guild relation %q", relation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().GetByID(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild: %w", err)
	}
	if guild == nil {
		return fmt.Errorf("guild %d not found", guildID)
	}

	if _, err := getOrCreateUser(ctx, uow, userID, displayName); err != nil {
		return err
	}

	if err := uow.MembershipRepository().Add(ctx, relation, guildID, userID); err != nil {
		return fmt.Errorf("failed to add guild relation: %w", err)
	}

	uow.EventBus().Publish(events.GuildRelationAddEvent{
		GuildID:  guildID,
		UserID:   userID,
		Relation: relation,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveRelation removes a user from one of the guild's reference sets.
// If that was the user's last keep criterion the sweep reclaims the user
// row before this transaction commits.
func (s *guildService) RemoveRelation(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error {
	if !relation.Valid() {
		return fmt.Errorf("unknown guild relation %q", relation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := uow.MembershipRepository().Remove(ctx, relation, guildID, userID); err != nil {
		return fmt.Errorf("failed to remove guild relation: %w", err)
	}

	uow.EventBus().Publish(events.GuildRelationRemoveEvent{
		GuildID:  guildID,
		UserID:   userID,
		Relation: relation,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListRelation returns the users in one of the guild's reference sets
func (s *guildService) ListRelation(ctx context.Context, relation models.GuildRelation, guildID int64) ([]*models.User, error) {
	if !relation.Valid() {
		return nil, fmt.Errorf("unknown guild relation %q", relation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	userIDs, err := uow.MembershipRepository().ListUserIDs(ctx, relation, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list guild relation: %w", err)
	}

	users := make([]*models.User, 0, len(userIDs))
	for _, userID := range userIDs {
		user, err := uow.UserRepository().GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
		}
		if user != nil {
			users = append(users, user)
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return users, nil
}
