package domain

import "time"

// DeckInput is the user-submitted data for a new deck. Its rules live with
// the deck validator and are bounded by MaxDeckNameLength and MaxFormatLength.
type DeckInput struct {
	Name   string `json:"name"`
	Format string `json:"format"`
}

// DeckLine records that a deck holds Quantity copies of Card.
// Within one deck there is at most one line per card MID.
type DeckLine struct {
	DeckID    string         `json:"deck_id"`
	Card      CardDefinition `json:"card"`
	Quantity  int            `json:"quantity"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Deck is a named collection of lines owned by exactly one inventory
type Deck struct {
	ID          string     `json:"id"`
	InventoryID string     `json:"inventory_id"`
	Name        string     `json:"name"`
	Format      string     `json:"format"`
	Lines       []DeckLine `json:"lines"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FindLine returns the index of the line holding mid, or -1
func (d *Deck) FindLine(mid string) int {
	for i := range d.Lines {
		if d.Lines[i].Card.MID == mid {
			return i
		}
	}
	return -1
}

// CardCount returns the total number of copies across all lines
func (d *Deck) CardCount() int {
	total := 0
	for _, l := range d.Lines {
		total += l.Quantity
	}
	return total
}
