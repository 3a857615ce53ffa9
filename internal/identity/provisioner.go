package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DeckBuilder_Go/internal/concurrency"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// Provisioner creates the single inventory each user owns. Deck and
// inventory services never do this themselves.
type Provisioner struct {
	store repository.Store
	locks *concurrency.LockManager
	now   func() time.Time
}

// NewProvisioner creates a Provisioner on store
func NewProvisioner(store repository.Store) *Provisioner {
	return &Provisioner{store: store, locks: concurrency.NewLockManager(), now: time.Now}
}

// Provision returns the user's inventory, creating it if needed. created
// reports whether this call made it. Concurrent calls for the same user
// converge on one inventory: callers in this process queue per user, and a
// conflict with another process is retried once.
func (p *Provisioner) Provision(ctx context.Context, userID string) (inv *domain.Inventory, created bool, err error) {
	userID, err = NormalizeUserID(userID)
	if err != nil {
		return nil, false, err
	}

	unlock := p.locks.Lock(userID)
	defer unlock()

	inv, created, err = p.provisionOnce(ctx, userID)
	if errors.Is(err, domain.ErrConflict) {
		// Lost the race; the winner's inventory is there now
		inv, created, err = p.provisionOnce(ctx, userID)
	}
	if err != nil {
		return nil, false, err
	}

	if created {
		logger.FromContext(ctx).Info("Inventory provisioned", "user_id", userID, "inventory_id", inv.ID)
	}
	return inv, created, nil
}

func (p *Provisioner) provisionOnce(ctx context.Context, userID string) (*domain.Inventory, bool, error) {
	var (
		inv     *domain.Inventory
		created bool
	)
	err := repository.WithTx(ctx, p.store, func(tx repository.Tx) error {
		existing, err := tx.GetInventoryByUser(ctx, userID)
		if err != nil {
			return repository.StoreErr("get inventory", err)
		}
		if existing != nil {
			inv = existing
			return nil
		}

		fresh := domain.Inventory{ID: uuid.NewString(), UserID: userID, CreatedAt: p.now().UTC()}
		if err := tx.InsertInventory(ctx, fresh); err != nil {
			return repository.StoreErr("insert inventory", err)
		}
		inv, created = &fresh, true
		return nil
	})
	return inv, created, err
}
