package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back otherwise. Errors that are not already domain errors are
// wrapped with domain.ErrStore.
func WithTx(ctx context.Context, store Store, fn func(tx Tx) error) error {
	tx, err := store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStore, err)
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("%w: commit: %v", domain.ErrStore, err)
	}
	return nil
}

// StoreErr wraps an unexpected store failure with domain.ErrStore, leaving
// domain errors (conflicts, not-found) untouched.
func StoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrStore) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
