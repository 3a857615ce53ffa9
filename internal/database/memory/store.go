// Package memory provides an in-process transactional store. Transactions
// are serialized: BeginTx takes the single writer slot, works on a copy of
// the state, and Commit swaps the copy in. It enforces the same uniqueness
// and foreign-key rules as the postgres schema.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

type lineRecord struct {
	quantity  int
	updatedAt time.Time
}

type state struct {
	cards       map[string]domain.CardDefinition
	decks       map[string]domain.Deck
	lines       map[string]map[string]lineRecord // deckID -> mid -> line
	inventories map[string]domain.Inventory      // keyed by user ID
}

func newState() *state {
	return &state{
		cards:       make(map[string]domain.CardDefinition),
		decks:       make(map[string]domain.Deck),
		lines:       make(map[string]map[string]lineRecord),
		inventories: make(map[string]domain.Inventory),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.cards {
		c.cards[k] = v
	}
	for k, v := range s.decks {
		c.decks[k] = v
	}
	for deckID, byMID := range s.lines {
		m := make(map[string]lineRecord, len(byMID))
		for mid, rec := range byMID {
			m[mid] = rec
		}
		c.lines[deckID] = m
	}
	for k, v := range s.inventories {
		c.inventories[k] = v
	}
	return c
}

// Store is an in-memory implementation of repository.Store
type Store struct {
	slot  chan struct{}
	state *state
	now   func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		slot:  make(chan struct{}, 1),
		state: newState(),
		now:   time.Now,
	}
}

// SetClock overrides the time source, for tests
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// BeginTx waits for the writer slot and opens a transaction
func (s *Store) BeginTx(ctx context.Context) (repository.Tx, error) {
	select {
	case s.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &Tx{store: s, work: s.state.clone()}, nil
}

func (s *Store) release() {
	<-s.slot
}

// Tx is a transaction on Store
type Tx struct {
	store  *Store
	work   *state
	closed bool
}

// Commit publishes the transaction's changes
func (t *Tx) Commit(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.store.state = t.work
	t.store.release()
	return nil
}

// Rollback discards the transaction's changes
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.store.release()
	return nil
}

func (t *Tx) check(ctx context.Context) error {
	if t.closed {
		return errTxClosed
	}
	return ctx.Err()
}

// GetCard returns the definition for mid, or nil
func (t *Tx) GetCard(ctx context.Context, mid string) (*domain.CardDefinition, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	card, ok := t.work.cards[mid]
	if !ok {
		return nil, nil
	}
	return &card, nil
}

// InsertCardIfAbsent stores card unless its MID is already present
func (t *Tx) InsertCardIfAbsent(ctx context.Context, card domain.CardDefinition) (*domain.CardDefinition, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	if existing, ok := t.work.cards[card.MID]; ok {
		return &existing, nil
	}
	if card.CreatedAt.IsZero() {
		card.CreatedAt = t.store.now()
	}
	t.work.cards[card.MID] = card
	return &card, nil
}

// GetDeck returns the deck record without lines, or nil
func (t *Tx) GetDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	deck, ok := t.work.decks[deckID]
	if !ok {
		return nil, nil
	}
	return &deck, nil
}

// GetDeckForUpdate is GetDeck; transactions are already serialized
func (t *Tx) GetDeckForUpdate(ctx context.Context, deckID string) (*domain.Deck, error) {
	return t.GetDeck(ctx, deckID)
}

// ListDecks returns the decks owned by inventoryID, oldest first
func (t *Tx) ListDecks(ctx context.Context, inventoryID string) ([]domain.Deck, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	decks := make([]domain.Deck, 0)
	for _, d := range t.work.decks {
		if d.InventoryID == inventoryID {
			decks = append(decks, d)
		}
	}
	sort.Slice(decks, func(i, j int) bool {
		if !decks[i].CreatedAt.Equal(decks[j].CreatedAt) {
			return decks[i].CreatedAt.Before(decks[j].CreatedAt)
		}
		return decks[i].ID < decks[j].ID
	})
	return decks, nil
}

// InsertDeck stores a new deck record
func (t *Tx) InsertDeck(ctx context.Context, deck domain.Deck) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if _, ok := t.work.decks[deck.ID]; ok {
		return fmt.Errorf("%w: deck %s already exists", domain.ErrConflict, deck.ID)
	}
	if !t.ownsInventory(deck.InventoryID) {
		return fmt.Errorf("deck %s references unknown inventory %s", deck.ID, deck.InventoryID)
	}
	deck.Lines = nil
	t.work.decks[deck.ID] = deck
	return nil
}

func (t *Tx) ownsInventory(inventoryID string) bool {
	for _, inv := range t.work.inventories {
		if inv.ID == inventoryID {
			return true
		}
	}
	return false
}

// TouchDeck bumps the deck's UpdatedAt
func (t *Tx) TouchDeck(ctx context.Context, deckID string) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	deck, ok := t.work.decks[deckID]
	if !ok {
		return fmt.Errorf("deck %s does not exist", deckID)
	}
	deck.UpdatedAt = t.store.now()
	t.work.decks[deckID] = deck
	return nil
}

// DeleteDeck removes a deck record. Lines must already be gone.
func (t *Tx) DeleteDeck(ctx context.Context, deckID string) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if len(t.work.lines[deckID]) > 0 {
		return fmt.Errorf("deck %s still has %d lines", deckID, len(t.work.lines[deckID]))
	}
	delete(t.work.lines, deckID)
	delete(t.work.decks, deckID)
	return nil
}

// ListDeckLines returns the deck's lines with their card definitions,
// ordered by card name
func (t *Tx) ListDeckLines(ctx context.Context, deckID string) ([]domain.DeckLine, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	lines := make([]domain.DeckLine, 0, len(t.work.lines[deckID]))
	for mid, rec := range t.work.lines[deckID] {
		lines = append(lines, domain.DeckLine{
			DeckID:    deckID,
			Card:      t.work.cards[mid],
			Quantity:  rec.quantity,
			UpdatedAt: rec.updatedAt,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Card.Name != lines[j].Card.Name {
			return lines[i].Card.Name < lines[j].Card.Name
		}
		return lines[i].Card.MID < lines[j].Card.MID
	})
	return lines, nil
}

// InsertDeckLine adds a line; ErrConflict if (deckID, mid) exists
func (t *Tx) InsertDeckLine(ctx context.Context, deckID, mid string, quantity int) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if _, ok := t.work.decks[deckID]; !ok {
		return fmt.Errorf("deck %s does not exist", deckID)
	}
	if _, ok := t.work.cards[mid]; !ok {
		return fmt.Errorf("card %s does not exist", mid)
	}
	byMID, ok := t.work.lines[deckID]
	if !ok {
		byMID = make(map[string]lineRecord)
		t.work.lines[deckID] = byMID
	}
	if _, exists := byMID[mid]; exists {
		return fmt.Errorf("%w: deck %s already holds card %s", domain.ErrConflict, deckID, mid)
	}
	byMID[mid] = lineRecord{quantity: quantity, updatedAt: t.store.now()}
	return nil
}

// UpdateDeckLineQuantity sets the quantity of an existing line
func (t *Tx) UpdateDeckLineQuantity(ctx context.Context, deckID, mid string, quantity int) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	rec, ok := t.work.lines[deckID][mid]
	if !ok {
		return fmt.Errorf("line %s/%s does not exist", deckID, mid)
	}
	rec.quantity = quantity
	rec.updatedAt = t.store.now()
	t.work.lines[deckID][mid] = rec
	return nil
}

// DeleteDeckLine removes one line
func (t *Tx) DeleteDeckLine(ctx context.Context, deckID, mid string) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	delete(t.work.lines[deckID], mid)
	return nil
}

// DeleteDeckLines removes every line of the deck and returns how many
func (t *Tx) DeleteDeckLines(ctx context.Context, deckID string) (int, error) {
	if err := t.check(ctx); err != nil {
		return 0, err
	}
	n := len(t.work.lines[deckID])
	delete(t.work.lines, deckID)
	return n, nil
}

// GetInventoryByUser returns the user's inventory, or nil
func (t *Tx) GetInventoryByUser(ctx context.Context, userID string) (*domain.Inventory, error) {
	if err := t.check(ctx); err != nil {
		return nil, err
	}
	inv, ok := t.work.inventories[userID]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

// InsertInventory stores a new inventory; ErrConflict if the user has one
func (t *Tx) InsertInventory(ctx context.Context, inventory domain.Inventory) error {
	if err := t.check(ctx); err != nil {
		return err
	}
	if _, ok := t.work.inventories[inventory.UserID]; ok {
		return fmt.Errorf("%w: user %s already has an inventory", domain.ErrConflict, inventory.UserID)
	}
	t.work.inventories[inventory.UserID] = inventory
	return nil
}

// CardCount returns the number of catalog entries, for tests and stats
func (s *Store) CardCount() int {
	s.slot <- struct{}{}
	defer s.release()
	return len(s.state.cards)
}

// LineCount returns the number of lines stored for deckID
func (s *Store) LineCount(deckID string) int {
	s.slot <- struct{}{}
	defer s.release()
	return len(s.state.lines[deckID])
}

var (
	_ repository.Store = (*Store)(nil)
	_ repository.Tx    = (*Tx)(nil)
)
