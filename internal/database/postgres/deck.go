package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

const selectDeckSQL = `
	SELECT deck_id, inventory_id, name, format, created_at, updated_at
	FROM decks
	WHERE deck_id = $1
`

// GetDeck returns the deck record without lines, or nil
func (t *Tx) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	return t.getDeck(ctx, selectDeckSQL, deckID)
}

// GetDeckForUpdate returns the deck record and locks its row
func (t *Tx) GetDeckForUpdate(ctx context.Context, deckID string) (*domain.Deck, error) {
	return t.getDeck(ctx, selectDeckSQL+" FOR UPDATE", deckID)
}

func (t *Tx) getDeck(ctx context.Context, query, deckID string) (*domain.Deck, error) {
	deckUUID, ok := parseID(deckID)
	if !ok {
		return nil, nil
	}

	var d domain.Deck
	err := t.tx.QueryRow(ctx, query, deckUUID).
		Scan(&d.ID, &d.InventoryID, &d.Name, &d.Format, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get deck %s: %w", deckID, err)
	}
	return &d, nil
}

// ListDecks returns the decks owned by an inventory, oldest first
func (t *Tx) ListDecks(ctx context.Context, inventoryID string) ([]domain.Deck, error) {
	invUUID, ok := parseID(inventoryID)
	if !ok {
		return []domain.Deck{}, nil
	}

	query := `
		SELECT deck_id, inventory_id, name, format, created_at, updated_at
		FROM decks
		WHERE inventory_id = $1
		ORDER BY created_at, deck_id
	`
	rows, err := t.tx.Query(ctx, query, invUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := make([]domain.Deck, 0)
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.InventoryID, &d.Name, &d.Format, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}
	return decks, nil
}

// InsertDeck stores a new deck record
func (t *Tx) InsertDeck(ctx context.Context, deck domain.Deck) error {
	query := `
		INSERT INTO decks (deck_id, inventory_id, name, format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := t.tx.Exec(ctx, query, deck.ID, deck.InventoryID, deck.Name, deck.Format, deck.CreatedAt, deck.UpdatedAt)
	return wrapWriteErr("insert deck", err)
}

// TouchDeck bumps updated_at on the deck
func (t *Tx) TouchDeck(ctx context.Context, deckID string) error {
	_, err := t.tx.Exec(ctx, "UPDATE decks SET updated_at = NOW() WHERE deck_id = $1", deckID)
	return wrapWriteErr("touch deck", err)
}

// DeleteDeck removes the deck record. The schema rejects the delete while
// lines still reference the deck.
func (t *Tx) DeleteDeck(ctx context.Context, deckID string) error {
	_, err := t.tx.Exec(ctx, "DELETE FROM decks WHERE deck_id = $1", deckID)
	return wrapWriteErr("delete deck", err)
}
