package deck

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/database/memory"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// fakeSearcher returns canned results per query
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]domain.CardData
	err     error
	calls   int
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{results: make(map[string][]domain.CardData)}
}

func (f *fakeSearcher) set(query string, cards ...domain.CardData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[query] = cards
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]domain.CardData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

var (
	lightningBolt = domain.CardData{MID: "LB1", Name: "Lightning Bolt", TypeLine: "Instant", SetCode: "M10"}
	shock         = domain.CardData{MID: "SH1", Name: "Shock", TypeLine: "Instant", SetCode: "M19"}
	mountain      = domain.CardData{MID: "MT1", Name: "Mountain", TypeLine: "Basic Land", SetCode: "M19"}
)

type fixture struct {
	store    *memory.Store
	catalog  catalog.Service
	searcher *fakeSearcher
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	cat := catalog.NewService(store, 64, time.Hour)
	searcher := newFakeSearcher()
	searcher.set("Lightning Bolt", lightningBolt)
	searcher.set("Shock", shock, lightningBolt)
	searcher.set("Mountain", mountain)

	return &fixture{
		store:    store,
		catalog:  cat,
		searcher: searcher,
		svc:      NewService(store, cat, searcher),
	}
}

// provision creates an inventory for userID and returns its id
func (f *fixture) provision(t *testing.T, userID string) string {
	t.Helper()
	inv := domain.Inventory{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now()}
	require.NoError(t, repository.WithTx(context.Background(), f.store, func(tx repository.Tx) error {
		return tx.InsertInventory(context.Background(), inv)
	}))
	return inv.ID
}

// newDeck creates an empty deck in the inventory and returns its id
func (f *fixture) newDeck(t *testing.T, inventoryID, name string) string {
	t.Helper()
	now := time.Now()
	d := domain.Deck{ID: uuid.NewString(), InventoryID: inventoryID, Name: name, Format: "Standard", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repository.WithTx(context.Background(), f.store, func(tx repository.Tx) error {
		return tx.InsertDeck(context.Background(), d)
	}))
	return d.ID
}

// lines reads the committed lines of a deck
func (f *fixture) lines(t *testing.T, deckID string) []domain.DeckLine {
	t.Helper()
	var lines []domain.DeckLine
	require.NoError(t, repository.WithTx(context.Background(), f.store, func(tx repository.Tx) error {
		var err error
		lines, err = tx.ListDeckLines(context.Background(), deckID)
		return err
	}))
	return lines
}

// racingStore simulates another request inserting the same deck line
// between our read and our insert. The first `conflicts` InsertDeckLine
// calls fail with ErrConflict; when rivalCommits is set, the next BeginTx
// first commits the competing line.
type racingStore struct {
	*memory.Store
	mu           sync.Mutex
	conflicts    int
	rivalCommits bool
	pending      *pendingLine
}

type pendingLine struct {
	deckID string
	card   domain.CardDefinition
}

func (s *racingStore) BeginTx(ctx context.Context) (repository.Tx, error) {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	if pending != nil {
		mid := pending.card.MID
		err := repository.WithTx(ctx, s.Store, func(tx repository.Tx) error {
			if _, err := tx.InsertCardIfAbsent(ctx, pending.card); err != nil {
				return err
			}
			lines, err := tx.ListDeckLines(ctx, pending.deckID)
			if err != nil {
				return err
			}
			for _, l := range lines {
				if l.Card.MID == mid {
					return tx.UpdateDeckLineQuantity(ctx, pending.deckID, mid, l.Quantity+1)
				}
			}
			return tx.InsertDeckLine(ctx, pending.deckID, mid, 1)
		})
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &racingTx{Tx: tx, store: s}, nil
}

type racingTx struct {
	repository.Tx
	store *racingStore
}

func (t *racingTx) InsertDeckLine(ctx context.Context, deckID, mid string, quantity int) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if t.store.conflicts > 0 {
		card, err := t.Tx.GetCard(ctx, mid)
		if err != nil || card == nil {
			return fmt.Errorf("card %s should be in the catalog before its line: %v", mid, err)
		}
		t.store.conflicts--
		if t.store.rivalCommits {
			t.store.pending = &pendingLine{deckID: deckID, card: *card}
		}
		return domain.ErrConflict
	}
	return t.Tx.InsertDeckLine(ctx, deckID, mid, quantity)
}
