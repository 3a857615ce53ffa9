package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DeckBuilder_Go/internal/database/memory"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

var bolt = domain.CardData{
	MID:      "LB1",
	Name:     "Lightning Bolt",
	ImageURL: "https://example.test/lb1.jpg",
	TypeLine: "Instant",
	SetCode:  "M10",
}

func newTestService(t *testing.T) (*service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewService(store, 16, time.Hour).(*service)
	return svc, store
}

func TestFindOrCreateCard_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	first, err := svc.FindOrCreateCard(ctx, bolt)
	require.NoError(t, err)

	renamed := bolt
	renamed.Name = "Bolt (alt art)"
	renamed.SetCode = "2XM"
	second, err := svc.FindOrCreateCard(ctx, renamed)
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.Equal(t, "Lightning Bolt", second.Name, "stored record wins")
	assert.Equal(t, "M10", second.SetCode)
	assert.Equal(t, 1, store.CardCount())
}

func TestFindOrCreate_StoredRecordWinsWithoutCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := NewService(store, 16, time.Hour).FindOrCreateCard(ctx, bolt)
	require.NoError(t, err)

	// A fresh service has a cold cache and must read the stored row
	fresh := NewService(store, 16, time.Hour)
	renamed := bolt
	renamed.Name = "Something Else"
	got, err := fresh.FindOrCreateCard(ctx, renamed)
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", got.Name)
	assert.Equal(t, 1, store.CardCount())
}

func TestFindOrCreate_RejectsMissingMID(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	_, err := svc.FindOrCreateCard(ctx, domain.CardData{Name: "No Id"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, store.CardCount())
}

func TestFindOrCreate_RolledBackInsertIsNotCached(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	card, err := svc.FindOrCreate(ctx, tx, bolt)
	require.NoError(t, err)
	assert.Equal(t, "LB1", card.MID)
	require.NoError(t, tx.Rollback(ctx))

	assert.Equal(t, 0, store.CardCount())
	_, err = svc.Find(ctx, "LB1")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFind(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Find(ctx, "")
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	_, err = svc.FindOrCreateCard(ctx, bolt)
	require.NoError(t, err)

	card, err := svc.Find(ctx, " LB1 ")
	require.NoError(t, err)
	assert.Equal(t, "Instant", card.TypeLine)
}

func TestCacheStats(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	// Seed directly so the first Find is a miss
	require.NoError(t, repository.WithTx(ctx, store, func(tx repository.Tx) error {
		_, err := tx.InsertCardIfAbsent(ctx, domain.NewCardDefinition(bolt, time.Now()))
		return err
	}))

	svc := NewService(store, 16, time.Hour)
	_, err := svc.Find(ctx, "LB1")
	require.NoError(t, err)
	_, err = svc.Find(ctx, "LB1")
	require.NoError(t, err)

	stats := svc.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestRemember_IgnoresEmptyMID(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Remember(domain.CardDefinition{})
	assert.Equal(t, 0, svc.Stats().Size)
}
