// Package catalog is the deduplicated registry of card definitions keyed by
// MID. It is append-only: definitions are created on first use and never
// updated or removed.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

const (
	DefaultCacheSize = 4096
	DefaultCacheTTL  = 24 * time.Hour
)

// Service defines the catalog operations
type Service interface {
	// Find returns the stored definition for mid, or domain.ErrCardNotFound
	Find(ctx context.Context, mid string) (*domain.CardDefinition, error)

	// FindOrCreate returns the definition for candidate.MID, inserting it
	// within tx when absent. An existing record always wins over differing
	// candidate fields.
	FindOrCreate(ctx context.Context, tx repository.Tx, candidate domain.CardData) (*domain.CardDefinition, error)

	// FindOrCreateCard is FindOrCreate in a transaction of its own
	FindOrCreateCard(ctx context.Context, candidate domain.CardData) (*domain.CardDefinition, error)

	// Remember records a definition whose transaction has committed
	Remember(card domain.CardDefinition)

	Stats() CacheStats
}

type service struct {
	store repository.Store
	cache *cardCache
	now   func() time.Time
}

// NewService creates a catalog service with a cache of cacheSize entries
func NewService(store repository.Store, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		store: store,
		cache: newCardCache(cacheSize, cacheTTL),
		now:   time.Now,
	}
}

func (s *service) Find(ctx context.Context, mid string) (*domain.CardDefinition, error) {
	mid = strings.TrimSpace(mid)
	if mid == "" {
		return nil, domain.ErrCardNotFound
	}
	if card, ok := s.cache.Get(mid); ok {
		return &card, nil
	}

	var found *domain.CardDefinition
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		card, err := tx.GetCard(ctx, mid)
		if err != nil {
			return repository.StoreErr("get card", err)
		}
		found = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCardNotFound, mid)
	}

	s.cache.Add(*found)
	return found, nil
}

func (s *service) FindOrCreate(ctx context.Context, tx repository.Tx, candidate domain.CardData) (*domain.CardDefinition, error) {
	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	// A cached definition is committed, so the row is guaranteed to exist
	if card, ok := s.cache.Get(candidate.MID); ok {
		return &card, nil
	}

	existing, err := tx.GetCard(ctx, candidate.MID)
	if err != nil {
		return nil, repository.StoreErr("get card", err)
	}
	if existing != nil {
		return existing, nil
	}

	stored, err := tx.InsertCardIfAbsent(ctx, domain.NewCardDefinition(candidate, s.now()))
	if err != nil {
		return nil, repository.StoreErr("insert card", err)
	}
	metrics.CatalogCardsCreated.Inc()
	logger.FromContext(ctx).Debug("Catalog entry resolved", "mid", stored.MID, "name", stored.Name)
	return stored, nil
}

func (s *service) FindOrCreateCard(ctx context.Context, candidate domain.CardData) (*domain.CardDefinition, error) {
	var card *domain.CardDefinition
	err := repository.WithTx(ctx, s.store, func(tx repository.Tx) error {
		var err error
		card, err = s.FindOrCreate(ctx, tx, candidate)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.Remember(*card)
	return card, nil
}

func (s *service) Remember(card domain.CardDefinition) {
	if card.MID == "" {
		return
	}
	s.cache.Add(card)
}

func (s *service) Stats() CacheStats {
	return s.cache.Stats()
}

func validateCandidate(candidate domain.CardData) error {
	if strings.TrimSpace(candidate.MID) == "" {
		return fmt.Errorf("%w: card candidate has no MID", domain.ErrValidation)
	}
	return nil
}
