package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// Store implements repository.Store on a pgx pool
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// BeginTx starts a read-committed transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx implements repository.Tx on a pgx transaction
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction. A deferred constraint failing at commit
// surfaces as domain.ErrConflict.
func (t *Tx) Commit(ctx context.Context) error {
	return wrapWriteErr("commit transaction", t.tx.Commit(ctx))
}

// Rollback rolls the transaction back
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return errors.New(domain.ErrMsgTxClosed)
	}
	return err
}

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)
