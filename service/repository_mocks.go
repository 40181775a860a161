package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sage/events"
	"sage/models"
)

// MockOwnerRepository is a mock implementation of OwnerRepository
type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, ownerID int64) (*models.Owner, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *models.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) Delete(ctx context.Context, ownerID int64) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

func (m *MockOwnerRepository) GetAll(ctx context.Context) ([]*models.Owner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Owner), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

// MockUserConfigRepository is a mock implementation of UserConfigRepository
type MockUserConfigRepository struct {
	mock.Mock
}

func (m *MockUserConfigRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserConfig), args.Error(1)
}

func (m *MockUserConfigRepository) GetOrCreate(ctx context.Context, userID int64) (*models.UserConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserConfig), args.Error(1)
}

func (m *MockUserConfigRepository) Upsert(ctx context.Context, config *models.UserConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockGuildRepository is a mock implementation of GuildRepository
type MockGuildRepository struct {
	mock.Mock
}

func (m *MockGuildRepository) GetByID(ctx context.Context, guildID int64) (*models.Guild, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guild), args.Error(1)
}

func (m *MockGuildRepository) Create(ctx context.Context, guild *models.Guild) error {
	args := m.Called(ctx, guild)
	return args.Error(0)
}

func (m *MockGuildRepository) Update(ctx context.Context, guild *models.Guild) error {
	args := m.Called(ctx, guild)
	return args.Error(0)
}

func (m *MockGuildRepository) Delete(ctx context.Context, guildID int64) error {
	args := m.Called(ctx, guildID)
	return args.Error(0)
}

func (m *MockGuildRepository) GetAll(ctx context.Context) ([]*models.Guild, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Guild), args.Error(1)
}

// MockGuildConfigRepository is a mock implementation of GuildConfigRepository
type MockGuildConfigRepository struct {
	mock.Mock
}

func (m *MockGuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildConfig), args.Error(1)
}

func (m *MockGuildConfigRepository) Update(ctx context.Context, config *models.GuildConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockFavouriteRepository is a mock implementation of FavouriteRepository
type MockFavouriteRepository struct {
	mock.Mock
}

func (m *MockFavouriteRepository) AddTrack(ctx context.Context, track *models.FavouriteTrack) error {
	args := m.Called(ctx, track)
	return args.Error(0)
}

func (m *MockFavouriteRepository) RemoveTrack(ctx context.Context, userID int64, url string) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}

func (m *MockFavouriteRepository) ListTracks(ctx context.Context, userID int64) ([]*models.FavouriteTrack, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FavouriteTrack), args.Error(1)
}

func (m *MockFavouriteRepository) AddPlaylist(ctx context.Context, playlist *models.FavouritePlaylist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *MockFavouriteRepository) RemovePlaylist(ctx context.Context, userID int64, url string) error {
	args := m.Called(ctx, userID, url)
	return args.Error(0)
}

func (m *MockFavouriteRepository) ListPlaylists(ctx context.Context, userID int64) ([]*models.FavouritePlaylist, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FavouritePlaylist), args.Error(1)
}

// MockMembershipRepository is a mock implementation of MembershipRepository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) Add(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error {
	args := m.Called(ctx, relation, guildID, userID)
	return args.Error(0)
}

func (m *MockMembershipRepository) Remove(ctx context.Context, relation models.GuildRelation, guildID, userID int64) error {
	args := m.Called(ctx, relation, guildID, userID)
	return args.Error(0)
}

func (m *MockMembershipRepository) Exists(ctx context.Context, relation models.GuildRelation, guildID, userID int64) (bool, error) {
	args := m.Called(ctx, relation, guildID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipRepository) ListUserIDs(ctx context.Context, relation models.GuildRelation, guildID int64) ([]int64, error) {
	args := m.Called(ctx, relation, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMembershipRepository) ListGuildIDs(ctx context.Context, relation models.GuildRelation, userID int64) ([]int64, error) {
	args := m.Called(ctx, relation, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	OwnerRepo       *MockOwnerRepository
	UserRepo        *MockUserRepository
	UserConfigRepo  *MockUserConfigRepository
	GuildRepo       *MockGuildRepository
	GuildConfigRepo *MockGuildConfigRepository
	FavouriteRepo   *MockFavouriteRepository
	MembershipRepo  *MockMembershipRepository
	Publisher       *MockEventPublisher
}

// NewMockUnitOfWork creates a unit of work mock with all repository mocks
// wired in
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		OwnerRepo:       new(MockOwnerRepository),
		UserRepo:        new(MockUserRepository),
		UserConfigRepo:  new(MockUserConfigRepository),
		GuildRepo:       new(MockGuildRepository),
		GuildConfigRepo: new(MockGuildConfigRepository),
		FavouriteRepo:   new(MockFavouriteRepository),
		MembershipRepo:  new(MockMembershipRepository),
		Publisher:       new(MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) OwnerRepository() OwnerRepository {
	return m.OwnerRepo
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.UserRepo
}

func (m *MockUnitOfWork) UserConfigRepository() UserConfigRepository {
	return m.UserConfigRepo
}

func (m *MockUnitOfWork) GuildRepository() GuildRepository {
	return m.GuildRepo
}

func (m *MockUnitOfWork) GuildConfigRepository() GuildConfigRepository {
	return m.GuildConfigRepo
}

func (m *MockUnitOfWork) FavouriteRepository() FavouriteRepository {
	return m.FavouriteRepo
}

func (m *MockUnitOfWork) MembershipRepository() MembershipRepository {
	return m.MembershipRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Publisher
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
