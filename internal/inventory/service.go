// Package inventory owns a user's collection of decks: creating, listing
// and deleting whole decks. Inventories themselves are provisioned by the
// identity subsystem and are never created here.
package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/osse101/DeckBuilder_Go/internal/deck"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// Service defines the inventory-level deck operations
type Service interface {
	CreateDeck(ctx context.Context, userID string, input domain.DeckInput) (*domain.Deck, error)
	DeleteDeck(ctx context.Context, userID, deckID string) error
	ListDecks(ctx context.Context, userID string) ([]domain.DeckSummary, error)

	// FindDecks narrows ListDecks to fuzzy matches of term, best first.
	// A blank term returns every deck.
	FindDecks(ctx context.Context, userID, term string) ([]domain.DeckSummary, error)
}

type service struct {
	store repository.Store
	now   func() time.Time
}

// NewService creates a new inventory service
func NewService(store repository.Store) Service {
	return &service{store: store, now: time.Now}
}

// CreateDeck validates input and adds an empty deck to the user's inventory.
// Invalid input fails with *domain.ValidationError before the store is touched.
func (s *service) CreateDeck(ctx context.Context, userID string, input domain.DeckInput) (*domain.Deck, error) {
	if err := deck.ValidateInput(input); err != nil {
		return nil, err
	}
	input = deck.NormalizeInput(input)

	var created *domain.Deck
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		inv, err := deck.ResolveInventory(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		d := domain.Deck{
			ID:          uuid.NewString(),
			InventoryID: inv.ID,
			Name:        input.Name,
			Format:      input.Format,
			Lines:       []domain.DeckLine{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.InsertDeck(ctx, d); err != nil {
			return repository.StoreErr("insert deck", err)
		}
		created = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.DecksCreated.Inc()
	logger.FromContext(ctx).Info("Deck created",
		"deck_id", created.ID, "inventory_id", created.InventoryID, "name", created.Name, "format", created.Format)
	return created, nil
}

// DeleteDeck removes the deck and all of its lines. Card definitions are
// left in the catalog.
func (s *service) DeleteDeck(ctx context.Context, userID, deckID string) error {
	var removed int
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		if _, _, err := deck.LoadOwned(ctx, tx, userID, deckID, true); err != nil {
			return err
		}
		var err error
		removed, err = deck.Delete(ctx, tx, deckID)
		return err
	})
	if err != nil {
		return err
	}

	metrics.DecksDeleted.Inc()
	logger.FromContext(ctx).Info("Deck deleted", "deck_id", deckID, "lines_removed", removed)
	return nil
}

// ListDecks returns the user's decks ordered by name for display, with
// creation time and id breaking ties.
func (s *service) ListDecks(ctx context.Context, userID string) ([]domain.DeckSummary, error) {
	var summaries []domain.DeckSummary
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		inv, err := deck.ResolveInventory(ctx, tx, userID)
		if err != nil {
			return err
		}
		decks, err := tx.ListDecks(ctx, inv.ID)
		if err != nil {
			return repository.StoreErr("list decks", err)
		}

		summaries = make([]domain.DeckSummary, 0, len(decks))
		for _, d := range decks {
			lines, err := tx.ListDeckLines(ctx, d.ID)
			if err != nil {
				return repository.StoreErr("list deck lines", err)
			}
			d.Lines = lines
			summaries = append(summaries, domain.DeckSummary{
				ID:        d.ID,
				Name:      d.Name,
				Format:    d.Format,
				CardCount: d.CardCount(),
				CreatedAt: d.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByName(summaries)
	return summaries, nil
}

func (s *service) FindDecks(ctx context.Context, userID, term string) ([]domain.DeckSummary, error) {
	summaries, err := s.ListDecks(ctx, userID)
	if err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return summaries, nil
	}

	matches := fuzzy.FindFrom(term, deckNames(summaries))
	// Equal scores keep the collated list order
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	found := make([]domain.DeckSummary, len(matches))
	for i, m := range matches {
		found[i] = summaries[m.Index]
	}
	return found, nil
}

// deckNames adapts summaries to fuzzy.Source
type deckNames []domain.DeckSummary

func (d deckNames) String(i int) string { return d[i].Name }
func (d deckNames) Len() int            { return len(d) }

// sortByName orders summaries with a case-insensitive English collation.
// A Collator keeps internal buffers, so each call builds its own.
func sortByName(summaries []domain.DeckSummary) {
	col := collate.New(language.English, collate.IgnoreCase, collate.Loose)
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
