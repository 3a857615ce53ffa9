package repository

import (
	"context"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

// Store opens transactions against the persistent store
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
	Ping(ctx context.Context) error
}

// Tx defines the record operations available inside one transaction.
// Lookups return (nil, nil) when the record does not exist.
type Tx interface {
	Cards
	Decks
	DeckLines
	Inventories

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Cards is the catalog table. Definitions are insert-only.
type Cards interface {
	GetCard(ctx context.Context, mid string) (*domain.CardDefinition, error)
	// InsertCardIfAbsent stores card unless a definition with the same MID
	// exists, and returns the stored definition either way.
	InsertCardIfAbsent(ctx context.Context, card domain.CardDefinition) (*domain.CardDefinition, error)
}

// Decks stores deck records (without their lines)
type Decks interface {
	GetDeck(ctx context.Context, deckID string) (*domain.Deck, error)
	// GetDeckForUpdate is GetDeck plus a row lock held until the transaction
	// ends, serializing line changes on the same deck.
	GetDeckForUpdate(ctx context.Context, deckID string) (*domain.Deck, error)
	ListDecks(ctx context.Context, inventoryID string) ([]domain.Deck, error)
	InsertDeck(ctx context.Context, deck domain.Deck) error
	TouchDeck(ctx context.Context, deckID string) error
	DeleteDeck(ctx context.Context, deckID string) error
}

// DeckLines stores per-deck card quantities.
// InsertDeckLine fails with domain.ErrConflict when (deck, mid) exists.
type DeckLines interface {
	ListDeckLines(ctx context.Context, deckID string) ([]domain.DeckLine, error)
	InsertDeckLine(ctx context.Context, deckID, mid string, quantity int) error
	UpdateDeckLineQuantity(ctx context.Context, deckID, mid string, quantity int) error
	DeleteDeckLine(ctx context.Context, deckID, mid string) error
	DeleteDeckLines(ctx context.Context, deckID string) (int, error)
}

// Inventories resolves the per-user inventory
type Inventories interface {
	GetInventoryByUser(ctx context.Context, userID string) (*domain.Inventory, error)
	InsertInventory(ctx context.Context, inventory domain.Inventory) error
}
