package domain

import "time"

// Inventory is the per-user container of decks. There is exactly one per
// user and it is provisioned by the identity subsystem.
type Inventory struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DeckSummary is a deck without its lines, as shown in deck listings
type DeckSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
}
