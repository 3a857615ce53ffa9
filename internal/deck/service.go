// Package deck manages the lines of a single deck: adding cards found by a
// remote search, removing copies, and cascade deletion.
package deck

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// CardSearcher finds candidate cards for a query, best match first
type CardSearcher interface {
	Search(ctx context.Context, query string) ([]domain.CardData, error)
}

// Service defines the deck operations. Every operation is scoped to the
// acting user and runs as one store transaction.
type Service interface {
	GetDeck(ctx context.Context, userID, deckID string) (*domain.Deck, error)

	// AddCard searches for query and adds one copy of the first result
	AddCard(ctx context.Context, userID, deckID, query string) (*domain.Deck, error)
	AddCards(ctx context.Context, userID, deckID, query string, quantity int) (*domain.Deck, error)

	// AddCandidate adds copies of an already chosen card record
	AddCandidate(ctx context.Context, userID, deckID string, candidate domain.CardData, quantity int) (*domain.Deck, error)

	RemoveCard(ctx context.Context, userID, deckID, mid string) (*domain.Deck, error)
	RemoveCards(ctx context.Context, userID, deckID, mid string, quantity int) (*domain.Deck, error)
}

type service struct {
	store      repository.Store
	catalog    catalog.Service
	searcher   CardSearcher
	reconciler *Reconciler
}

// NewService creates a new deck service
func NewService(store repository.Store, catalogSvc catalog.Service, searcher CardSearcher) Service {
	return &service{
		store:      store,
		catalog:    catalogSvc,
		searcher:   searcher,
		reconciler: NewReconciler(catalogSvc),
	}
}

func (s *service) GetDeck(ctx context.Context, userID, deckID string) (*domain.Deck, error) {
	var deck *domain.Deck
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		var err error
		_, deck, err = LoadOwned(ctx, tx, userID, deckID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *service) AddCard(ctx context.Context, userID, deckID, query string) (*domain.Deck, error) {
	return s.AddCards(ctx, userID, deckID, query, 1)
}

func (s *service) AddCards(ctx context.Context, userID, deckID, query string, quantity int) (*domain.Deck, error) {
	log := logger.FromContext(ctx)

	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrValidation)
	}

	// The remote call happens outside the transaction
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		log.Info("Card search returned nothing", "query", query, "deck_id", deckID)
		return nil, fmt.Errorf("%w: %q", domain.ErrNoSearchResults, query)
	}

	// Ambiguous queries resolve to the first candidate
	first := results[0]
	if len(results) > 1 {
		log.Debug("Card search was ambiguous, using first result",
			"query", query, "results", len(results), "mid", first.MID)
	}
	return s.AddCandidate(ctx, userID, deckID, first, quantity)
}

func (s *service) AddCandidate(ctx context.Context, userID, deckID string, candidate domain.CardData, quantity int) (*domain.Deck, error) {
	log := logger.FromContext(ctx)

	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	candidate.MID = strings.TrimSpace(candidate.MID)
	if candidate.MID == "" {
		return nil, fmt.Errorf("%w: card candidate has no MID", domain.ErrValidation)
	}

	deck, change, err := s.addOnce(ctx, userID, deckID, candidate, quantity)
	if errors.Is(err, domain.ErrConflict) {
		// Another request created the line first; the retry sees it and
		// increments instead
		log.Info("Deck line conflict, retrying as increment", "deck_id", deckID, "mid", candidate.MID)
		metrics.DeckLineConflicts.WithLabelValues(metrics.ConflictRetried).Inc()
		deck, change, err = s.addOnce(ctx, userID, deckID, candidate, quantity)
		if errors.Is(err, domain.ErrConflict) {
			metrics.DeckLineConflicts.WithLabelValues(metrics.ConflictFailed).Inc()
		}
	}
	if err != nil {
		return nil, err
	}

	s.catalog.Remember(change.Card)

	outcome := metrics.OutcomeIncrement
	if change.NewLine {
		outcome = metrics.OutcomeNewLine
	}
	metrics.CardsAdded.WithLabelValues(outcome).Add(float64(quantity))
	log.Info("Card added to deck",
		"deck_id", deck.ID, "mid", change.Card.MID, "added", quantity, "quantity", change.Quantity)
	return deck, nil
}

func (s *service) addOnce(ctx context.Context, userID, deckID string, candidate domain.CardData, quantity int) (*domain.Deck, *LineChange, error) {
	var (
		deck   *domain.Deck
		change *LineChange
	)
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		var err error
		_, deck, err = LoadOwned(ctx, tx, userID, deckID, true)
		if err != nil {
			return err
		}
		change, err = s.reconciler.AddLine(ctx, tx, deck, candidate, quantity)
		if err != nil {
			return err
		}
		return touch(ctx, tx, deck)
	})
	if err != nil {
		return nil, nil, err
	}
	return deck, change, nil
}

func (s *service) RemoveCard(ctx context.Context, userID, deckID, mid string) (*domain.Deck, error) {
	return s.RemoveCards(ctx, userID, deckID, mid, 1)
}

func (s *service) RemoveCards(ctx context.Context, userID, deckID, mid string, quantity int) (*domain.Deck, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	mid = strings.TrimSpace(mid)

	var (
		deck   *domain.Deck
		change *LineChange
	)
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		var err error
		_, deck, err = LoadOwned(ctx, tx, userID, deckID, true)
		if err != nil {
			return err
		}
		change, err = s.reconciler.RemoveLine(ctx, tx, deck, mid, quantity)
		if err != nil {
			return err
		}
		return touch(ctx, tx, deck)
	})
	if err != nil {
		return nil, err
	}

	outcome := metrics.OutcomeDecrement
	if change.Quantity == 0 {
		outcome = metrics.OutcomeLineGone
	}
	metrics.CardsRemoved.WithLabelValues(outcome).Add(float64(quantity))
	logger.FromContext(ctx).Info("Card removed from deck",
		"deck_id", deck.ID, "mid", mid, "removed", quantity, "quantity", change.Quantity)
	return deck, nil
}

func touch(ctx context.Context, tx repository.Tx, deck *domain.Deck) error {
	if err := tx.TouchDeck(ctx, deck.ID); err != nil {
		return repository.StoreErr("touch deck", err)
	}
	return nil
}
