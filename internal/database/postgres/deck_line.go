package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

// ListDeckLines returns the deck's lines joined with their card definitions
func (t *Tx) ListDeckLines(ctx context.Context, deckID string) ([]domain.DeckLine, error) {
	query := `
		SELECT dl.deck_id, dl.quantity, dl.updated_at,
		       c.mid, c.name, c.image_url, c.type_line, c.set_code, c.created_at
		FROM deck_lines dl
		JOIN card_definitions c ON c.mid = dl.card_mid
		WHERE dl.deck_id = $1
		ORDER BY c.name, c.mid
	`
	rows, err := t.tx.Query(ctx, query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deck lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.DeckLine, 0)
	for rows.Next() {
		var l domain.DeckLine
		if err := rows.Scan(&l.DeckID, &l.Quantity, &l.UpdatedAt,
			&l.Card.MID, &l.Card.Name, &l.Card.ImageURL, &l.Card.TypeLine, &l.Card.SetCode, &l.Card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deck lines: %w", err)
	}
	return lines, nil
}

// InsertDeckLine adds a line; a duplicate (deck, mid) is domain.ErrConflict.
// After a conflict the transaction is aborted and must be retried whole.
func (t *Tx) InsertDeckLine(ctx context.Context, deckID, mid string, quantity int) error {
	query := `
		INSERT INTO deck_lines (deck_id, card_mid, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := t.tx.Exec(ctx, query, deckID, mid, quantity)
	return wrapWriteErr("insert deck line", err)
}

// UpdateDeckLineQuantity sets the quantity of an existing line
func (t *Tx) UpdateDeckLineQuantity(ctx context.Context, deckID, mid string, quantity int) error {
	query := `
		UPDATE deck_lines
		SET quantity = $3, updated_at = NOW()
		WHERE deck_id = $1 AND card_mid = $2
	`
	tag, err := t.tx.Exec(ctx, query, deckID, mid, quantity)
	if err != nil {
		return wrapWriteErr("update deck line", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deck line %s/%s does not exist", deckID, mid)
	}
	return nil
}

// DeleteDeckLine removes one line
func (t *Tx) DeleteDeckLine(ctx context.Context, deckID, mid string) error {
	_, err := t.tx.Exec(ctx, "DELETE FROM deck_lines WHERE deck_id = $1 AND card_mid = $2", deckID, mid)
	return wrapWriteErr("delete deck line", err)
}

// DeleteDeckLines removes every line of a deck
func (t *Tx) DeleteDeckLines(ctx context.Context, deckID string) (int, error) {
	tag, err := t.tx.Exec(ctx, "DELETE FROM deck_lines WHERE deck_id = $1", deckID)
	if err != nil {
		return 0, wrapWriteErr("delete deck lines", err)
	}
	return int(tag.RowsAffected()), nil
}
