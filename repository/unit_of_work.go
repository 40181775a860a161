package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"sage/database"
	"sage/events"
	"sage/service"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	ownerRepo        service.OwnerRepository
	userRepo         service.UserRepository
	userConfigRepo   service.UserConfigRepository
	guildRepo        service.GuildRepository
	guildConfigRepo  service.GuildConfigRepository
	favouriteRepo    service.FavouriteRepository
	membershipRepo   service.MembershipRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.ownerRepo = newOwnerRepositoryWithTx(tx)
	u.userRepo = newUserRepositoryWithTx(tx)
	u.userConfigRepo = newUserConfigRepositoryWithTx(tx)
	u.guildRepo = newGuildRepositoryWithTx(tx)
	u.guildConfigRepo = newGuildConfigRepositoryWithTx(tx)
	u.favouriteRepo = newFavouriteRepositoryWithTx(tx)
	u.membershipRepo = newMembershipRepositoryWithTx(tx)

	return nil
}

// Commit runs the orphan reclamation sweep and then commits the
// transaction. The sweep executes inside the transaction, against the
// staged writes; if it cannot be evaluated the commit is refused and the
// caller's deferred Rollback unwinds the whole unit of work. Committing a
// write whose reclamation obligations were never checked is not an option.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := reclaimOrphanedUsers(u.ctx, u.tx, u.transactionalBus); err != nil {
		return fmt.Errorf("reclamation sweep failed: %w", err)
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// OwnerRepository returns the owner repository for this unit of work
func (u *unitOfWork) OwnerRepository() service.OwnerRepository {
	if u.ownerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ownerRepo
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// UserConfigRepository returns the user config repository for this unit of work
func (u *unitOfWork) UserConfigRepository() service.UserConfigRepository {
	if u.userConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userConfigRepo
}

// GuildRepository returns the guild repository for this unit of work
func (u *unitOfWork) GuildRepository() service.GuildRepository {
	if u.guildRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildRepo
}

// GuildConfigRepository returns the guild config repository for this unit of work
func (u *unitOfWork) GuildConfigRepository() service.GuildConfigRepository {
	if u.guildConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.guildConfigRepo
}

// FavouriteRepository returns the favourite repository for this unit of work
func (u *unitOfWork) FavouriteRepository() service.FavouriteRepository {
	if u.favouriteRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.favouriteRepo
}

// MembershipRepository returns the membership repository for this unit of work
func (u *unitOfWork) MembershipRepository() service.MembershipRepository {
	if u.membershipRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.membershipRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
