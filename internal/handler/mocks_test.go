package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/DeckBuilder_Go/internal/cardsearch"
	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

type MockDeckService struct {
	mock.Mock
}

func (m *MockDeckService) GetDeck(ctx context.Context, userID, deckID string) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockDeckService) AddCard(ctx context.Context, userID, deckID, query string) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, query)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockDeckService) AddCards(ctx context.Context, userID, deckID, query string, quantity int) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, query, quantity)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockDeckService) AddCandidate(ctx context.Context, userID, deckID string, candidate domain.CardData, quantity int) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, candidate, quantity)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockDeckService) RemoveCard(ctx context.Context, userID, deckID, mid string) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, mid)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockDeckService) RemoveCards(ctx context.Context, userID, deckID, mid string, quantity int) (*domain.Deck, error) {
	args := m.Called(ctx, userID, deckID, mid, quantity)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateDeck(ctx context.Context, userID string, input domain.DeckInput) (*domain.Deck, error) {
	args := m.Called(ctx, userID, input)
	d, _ := args.Get(0).(*domain.Deck)
	return d, args.Error(1)
}

func (m *MockInventoryService) DeleteDeck(ctx context.Context, userID, deckID string) error {
	return m.Called(ctx, userID, deckID).Error(0)
}

func (m *MockInventoryService) ListDecks(ctx context.Context, userID string) ([]domain.DeckSummary, error) {
	args := m.Called(ctx, userID)
	s, _ := args.Get(0).([]domain.DeckSummary)
	return s, args.Error(1)
}

func (m *MockInventoryService) FindDecks(ctx context.Context, userID, term string) ([]domain.DeckSummary, error) {
	args := m.Called(ctx, userID, term)
	s, _ := args.Get(0).([]domain.DeckSummary)
	return s, args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Find(ctx context.Context, mid string) (*domain.CardDefinition, error) {
	args := m.Called(ctx, mid)
	c, _ := args.Get(0).(*domain.CardDefinition)
	return c, args.Error(1)
}

func (m *MockCatalogService) FindOrCreate(ctx context.Context, tx repository.Tx, candidate domain.CardData) (*domain.CardDefinition, error) {
	args := m.Called(ctx, tx, candidate)
	c, _ := args.Get(0).(*domain.CardDefinition)
	return c, args.Error(1)
}

func (m *MockCatalogService) FindOrCreateCard(ctx context.Context, candidate domain.CardData) (*domain.CardDefinition, error) {
	args := m.Called(ctx, candidate)
	c, _ := args.Get(0).(*domain.CardDefinition)
	return c, args.Error(1)
}

func (m *MockCatalogService) Remember(card domain.CardDefinition) {
	m.Called(card)
}

func (m *MockCatalogService) Stats() catalog.CacheStats {
	return m.Called().Get(0).(catalog.CacheStats)
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, query string) ([]domain.CardData, error) {
	args := m.Called(ctx, query)
	r, _ := args.Get(0).([]domain.CardData)
	return r, args.Error(1)
}

type MockSearchCache struct {
	mock.Mock
}

func (m *MockSearchCache) Stats() cardsearch.CacheStats {
	return m.Called().Get(0).(cardsearch.CacheStats)
}

func (m *MockSearchCache) Purge() {
	m.Called()
}

type MockProvisioner struct {
	mock.Mock
}

func (m *MockProvisioner) Provision(ctx context.Context, userID string) (*domain.Inventory, bool, error) {
	args := m.Called(ctx, userID)
	inv, _ := args.Get(0).(*domain.Inventory)
	return inv, args.Bool(1), args.Error(2)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
