package deck

import (
	"context"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// ResolveInventory returns the acting user's inventory. A missing inventory
// is domain.ErrInventoryNotFound; it is never created here.
func ResolveInventory(ctx context.Context, tx repository.Tx, userID string) (*domain.Inventory, error) {
	inv, err := tx.GetInventoryByUser(ctx, userID)
	if err != nil {
		return nil, repository.StoreErr("get inventory", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrInventoryNotFound, userID)
	}
	return inv, nil
}

// LoadOwned resolves the user's inventory and the deck with its lines. A
// deck that does not exist and a deck owned by another inventory are both
// domain.ErrDeckNotFound. With forUpdate the deck row stays locked until tx
// ends.
func LoadOwned(ctx context.Context, tx repository.Tx, userID, deckID string, forUpdate bool) (*domain.Inventory, *domain.Deck, error) {
	inv, err := ResolveInventory(ctx, tx, userID)
	if err != nil {
		return nil, nil, err
	}

	var deck *domain.Deck
	if forUpdate {
		deck, err = tx.GetDeckForUpdate(ctx, deckID)
	} else {
		deck, err = tx.GetDeck(ctx, deckID)
	}
	if err != nil {
		return nil, nil, repository.StoreErr("get deck", err)
	}
	if deck == nil || deck.InventoryID != inv.ID {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrDeckNotFound, deckID)
	}

	lines, err := tx.ListDeckLines(ctx, deck.ID)
	if err != nil {
		return nil, nil, repository.StoreErr("list deck lines", err)
	}
	deck.Lines = lines
	return inv, deck, nil
}

// Delete removes every line of the deck and then the deck itself, inside
// tx. It returns how many lines were removed.
func Delete(ctx context.Context, tx repository.Tx, deckID string) (int, error) {
	removed, err := tx.DeleteDeckLines(ctx, deckID)
	if err != nil {
		return 0, repository.StoreErr("delete deck lines", err)
	}
	if err := tx.DeleteDeck(ctx, deckID); err != nil {
		return 0, repository.StoreErr("delete deck", err)
	}
	return removed, nil
}
