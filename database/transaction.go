package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Hook is called after a transaction's writes have been staged and before
// the transaction commits. The hook sees the transaction's own writes; a
// hook error rolls the whole transaction back.
type Hook func(ctx context.Context, tx pgx.Tx) error

// WithTransaction executes fn within a database transaction.
// If fn returns an error the transaction is rolled back, otherwise it is
// committed.
func (db *DB) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return db.WithTransactionHook(ctx, fn, nil)
}

// WithTransactionHook executes fn within a transaction and then runs hook,
// still inside the same transaction, before committing. This is the seam
// the orphan reclamation sweep hangs off: the hook is an explicit call at
// the unit-of-work boundary, not an implicit event subscription.
func (db *DB) WithTransactionHook(ctx context.Context, fn func(tx pgx.Tx) error, hook Hook) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				err = fmt.Errorf("rollback failed: %v, original error: %w", rbErr, err)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if hook != nil {
		if err = hook(ctx, tx); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
