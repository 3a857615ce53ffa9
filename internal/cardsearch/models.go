package cardsearch

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

// cardsResponse is the body of GET /v1/cards
type cardsResponse struct {
	Cards []apiCard `json:"cards"`
}

// apiCard holds the fields of a remote card record that the catalog keeps
type apiCard struct {
	Name         string       `json:"name"`
	MultiverseID multiverseID `json:"multiverseid"`
	ImageURL     string       `json:"imageUrl"`
	Type         string       `json:"type"`
	Set          string       `json:"set"`
}

func (c apiCard) toCardData() (domain.CardData, bool) {
	mid := strings.TrimSpace(string(c.MultiverseID))
	if mid == "" || mid == "0" {
		return domain.CardData{}, false
	}
	return domain.CardData{
		MID:      mid,
		Name:     c.Name,
		ImageURL: c.ImageURL,
		TypeLine: c.Type,
		SetCode:  c.Set,
	}, true
}

// multiverseID accepts the id as either a JSON string or number; the API
// has returned both over time.
type multiverseID string

func (m *multiverseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = multiverseID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = multiverseID(n.String())
	return nil
}
