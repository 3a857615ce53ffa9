package deck

import (
	"context"
	"fmt"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// LineChange describes what a reconciliation step did to a deck
type LineChange struct {
	Card domain.CardDefinition
	// Quantity is the line's quantity afterwards; zero means the line was removed
	Quantity int
	// NewLine is set when the add created the line
	NewLine bool
}

// Reconciler maps incoming card records onto catalog entries and deck
// lines. Every method works inside the caller's transaction and leaves
// the deck's in-memory Lines matching what it wrote.
type Reconciler struct {
	catalog catalog.Service
}

// NewReconciler creates a Reconciler backed by the catalog
func NewReconciler(catalog catalog.Service) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// AddLine adds n copies of candidate to deck. An existing line for the
// same MID is incremented without consulting the catalog; otherwise the
// catalog entry is found or created and a new line inserted. A concurrent
// insert of the same line surfaces as domain.ErrConflict.
func (r *Reconciler) AddLine(ctx context.Context, tx repository.Tx, deck *domain.Deck, candidate domain.CardData, n int) (*LineChange, error) {
	if err := ValidateQuantity(n); err != nil {
		return nil, err
	}

	if idx := deck.FindLine(candidate.MID); idx >= 0 {
		line := &deck.Lines[idx]
		qty := line.Quantity + n
		if err := tx.UpdateDeckLineQuantity(ctx, deck.ID, line.Card.MID, qty); err != nil {
			return nil, repository.StoreErr("update deck line", err)
		}
		line.Quantity = qty
		return &LineChange{Card: line.Card, Quantity: qty}, nil
	}

	card, err := r.catalog.FindOrCreate(ctx, tx, candidate)
	if err != nil {
		return nil, err
	}
	if err := tx.InsertDeckLine(ctx, deck.ID, card.MID, n); err != nil {
		return nil, repository.StoreErr("insert deck line", err)
	}
	deck.Lines = append(deck.Lines, domain.DeckLine{DeckID: deck.ID, Card: *card, Quantity: n})
	return &LineChange{Card: *card, Quantity: n, NewLine: true}, nil
}

// RemoveLine takes n copies of mid out of deck. Dropping below one copy
// deletes the line. Removing a card the deck does not hold is
// domain.ErrCardNotInDeck and changes nothing.
func (r *Reconciler) RemoveLine(ctx context.Context, tx repository.Tx, deck *domain.Deck, mid string, n int) (*LineChange, error) {
	if err := ValidateQuantity(n); err != nil {
		return nil, err
	}

	idx := deck.FindLine(mid)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrCardNotInDeck, mid)
	}
	line := deck.Lines[idx]

	remaining := line.Quantity - n
	if remaining < 1 {
		if err := tx.DeleteDeckLine(ctx, deck.ID, mid); err != nil {
			return nil, repository.StoreErr("delete deck line", err)
		}
		deck.Lines = append(deck.Lines[:idx], deck.Lines[idx+1:]...)
		return &LineChange{Card: line.Card, Quantity: 0}, nil
	}

	if err := tx.UpdateDeckLineQuantity(ctx, deck.ID, mid, remaining); err != nil {
		return nil, repository.StoreErr("update deck line", err)
	}
	deck.Lines[idx].Quantity = remaining
	return &LineChange{Card: line.Card, Quantity: remaining}, nil
}
