package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

const selectCardSQL = `
	SELECT mid, name, image_url, type_line, set_code, created_at
	FROM card_definitions
	WHERE mid = $1
`

// GetCard returns the catalog entry for mid, or nil
func (t *Tx) GetCard(ctx context.Context, mid string) (*domain.CardDefinition, error) {
	var c domain.CardDefinition
	err := t.tx.QueryRow(ctx, selectCardSQL, mid).
		Scan(&c.MID, &c.Name, &c.ImageURL, &c.TypeLine, &c.SetCode, &c.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card %s: %w", mid, err)
	}
	return &c, nil
}

// InsertCardIfAbsent inserts card unless its MID exists and returns the
// stored row. Concurrent inserts of the same MID converge on one row.
func (t *Tx) InsertCardIfAbsent(ctx context.Context, card domain.CardDefinition) (*domain.CardDefinition, error) {
	query := `
		INSERT INTO card_definitions (mid, name, image_url, type_line, set_code, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (mid) DO NOTHING
	`
	if _, err := t.tx.Exec(ctx, query, card.MID, card.Name, card.ImageURL, card.TypeLine, card.SetCode); err != nil {
		return nil, wrapWriteErr("insert card", err)
	}

	stored, err := t.GetCard(ctx, card.MID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("card %s missing after insert", card.MID)
	}
	return stored, nil
}
