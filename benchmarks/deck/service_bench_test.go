package deck_bench

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/database/memory"
	"github.com/osse101/DeckBuilder_Go/internal/deck"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/inventory"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// --- Stubs ---

type stubSearcher struct {
	cards map[string]domain.CardData
}

func (s stubSearcher) Search(_ context.Context, query string) ([]domain.CardData, error) {
	if c, ok := s.cards[query]; ok {
		return []domain.CardData{c}, nil
	}
	return nil, nil
}

type setup struct {
	decks     deck.Service
	inventory inventory.Service
	userID    string
	deckID    string
	queries   []string
}

func newSetup(b *testing.B, distinctCards int) *setup {
	b.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	cat := catalog.NewService(store, 1024, time.Hour)

	search := stubSearcher{cards: make(map[string]domain.CardData, distinctCards)}
	queries := make([]string, distinctCards)
	for i := range queries {
		name := fmt.Sprintf("Card %03d", i)
		queries[i] = name
		search.cards[name] = domain.CardData{MID: fmt.Sprintf("MID%03d", i), Name: name, SetCode: "BEN"}
	}

	userID := "bench-user"
	err := repository.WithTx(ctx, store, func(tx repository.Tx) error {
		return tx.InsertInventory(ctx, domain.Inventory{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now()})
	})
	if err != nil {
		b.Fatal(err)
	}

	inv := inventory.NewService(store)
	d, err := inv.CreateDeck(ctx, userID, domain.DeckInput{Name: "Bench", Format: "Vintage"})
	if err != nil {
		b.Fatal(err)
	}

	return &setup{
		decks:     deck.NewService(store, cat, search),
		inventory: inv,
		userID:    userID,
		deckID:    d.ID,
		queries:   queries,
	}
}

// BenchmarkAddCard_Increment measures repeated adds of cards already in the deck
func BenchmarkAddCard_Increment(b *testing.B) {
	s := newSetup(b, 1)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.decks.AddCard(ctx, s.userID, s.deckID, s.queries[0]); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkAddCard_Spread cycles through 60 distinct cards
func BenchmarkAddCard_Spread(b *testing.B) {
	s := newSetup(b, 60)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.decks.AddCard(ctx, s.userID, s.deckID, s.queries[i%len(s.queries)]); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkListDecks measures listing an inventory of 50 decks
func BenchmarkListDecks(b *testing.B) {
	s := newSetup(b, 1)
	ctx := context.Background()
	for i := 0; i < 49; i++ {
		if _, err := s.inventory.CreateDeck(ctx, s.userID, domain.DeckInput{Name: fmt.Sprintf("deck %02d", 49-i), Format: "Modern"}); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := s.inventory.ListDecks(ctx, s.userID); err != nil {
			b.Fatal(err)
		}
	}
}
