package domain

import "time"

// CardData is a candidate card record as returned by the remote card search.
type CardData struct {
	MID      string `json:"mid"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	TypeLine string `json:"type_line,omitempty"`
	SetCode  string `json:"set_code,omitempty"`
}

// CardDefinition is the canonical catalog entry for one card printing.
// A given MID always denotes the same printing; definitions are never
// updated or deleted once stored.
type CardDefinition struct {
	MID       string    `json:"mid"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	TypeLine  string    `json:"type_line,omitempty"`
	SetCode   string    `json:"set_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCardDefinition builds a catalog entry from a search candidate
func NewCardDefinition(data CardData, now time.Time) CardDefinition {
	return CardDefinition{
		MID:       data.MID,
		Name:      data.Name,
		ImageURL:  data.ImageURL,
		TypeLine:  data.TypeLine,
		SetCode:   data.SetCode,
		CreatedAt: now,
	}
}
