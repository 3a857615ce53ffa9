package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

// GetInventoryByUser returns the user's inventory, or nil
func (t *Tx) GetInventoryByUser(ctx context.Context, userID string) (*domain.Inventory, error) {
	query := `
		SELECT inventory_id, user_id, created_at
		FROM inventories
		WHERE user_id = $1
	`
	var inv domain.Inventory
	err := t.tx.QueryRow(ctx, query, userID).Scan(&inv.ID, &inv.UserID, &inv.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return &inv, nil
}

// InsertInventory stores a new inventory; a second one for the same user
// is domain.ErrConflict
func (t *Tx) InsertInventory(ctx context.Context, inventory domain.Inventory) error {
	query := `
		INSERT INTO inventories (inventory_id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := t.tx.Exec(ctx, query, inventory.ID, inventory.UserID, inventory.CreatedAt)
	return wrapWriteErr("insert inventory", err)
}

// parseID reports whether id is a UUID; malformed ids cannot match any row
func parseID(id string) (uuid.UUID, bool) {
	u, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}
