package identity

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DeckBuilder_Go/internal/database/memory"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
	"github.com/osse101/DeckBuilder_Go/internal/testing/leaktest"
)

func TestProvision_Idempotent(t *testing.T) {
	ctx := context.Background()
	p := NewProvisioner(memory.NewStore())

	first, created, err := p.Provision(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", first.UserID)

	second, created, err := p.Provision(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	bob, _, err := p.Provision(ctx, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, bob.ID)
}

func TestProvision_InvalidUser(t *testing.T) {
	_, _, err := NewProvisioner(memory.NewStore()).Provision(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestProvision_Concurrent(t *testing.T) {
	ctx := context.Background()
	p := NewProvisioner(memory.NewStore())

	const workers = 8
	ids := make([]string, workers)
	leaktest.CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				inv, _, err := p.Provision(ctx, "carol")
				if assert.NoError(t, err) {
					ids[i] = inv.ID
				}
			}(i)
		}
		wg.Wait()
	})

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

// raceStore hides a rival's inventory from the first attempt and fails its
// insert with a conflict; the rival's row is committed before the next
// transaction begins
type raceStore struct {
	*memory.Store
	rival   *domain.Inventory
	fired   bool
	pending bool
}

type raceTx struct {
	repository.Tx
	store *raceStore
}

func (s *raceStore) BeginTx(ctx context.Context) (repository.Tx, error) {
	if s.pending {
		s.pending = false
		err := repository.WithTx(ctx, s.Store, func(tx repository.Tx) error {
			return tx.InsertInventory(ctx, *s.rival)
		})
		if err != nil {
			return nil, err
		}
	}
	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &raceTx{Tx: tx, store: s}, nil
}

func (t *raceTx) GetInventoryByUser(ctx context.Context, userID string) (*domain.Inventory, error) {
	if !t.store.fired {
		return nil, nil
	}
	return t.Tx.GetInventoryByUser(ctx, userID)
}

func (t *raceTx) InsertInventory(ctx context.Context, inv domain.Inventory) error {
	if !t.store.fired {
		t.store.fired = true
		t.store.pending = true
		return domain.ErrConflict
	}
	return t.Tx.InsertInventory(ctx, inv)
}

func TestProvision_ConflictConverges(t *testing.T) {
	rival := domain.Inventory{ID: "rival-inv", UserID: "dave"}
	store := &raceStore{Store: memory.NewStore(), rival: &rival}
	p := NewProvisioner(store)

	inv, created, err := p.Provision(context.Background(), "dave")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "rival-inv", inv.ID)
}
