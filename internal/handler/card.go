package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
)

// CardSearcher runs a remote card search
type CardSearcher interface {
	Search(ctx context.Context, query string) ([]domain.CardData, error)
}

// CardSearchResponse lists search candidates in result order
type CardSearchResponse struct {
	Query   string            `json:"query"`
	Results []domain.CardData `json:"results"`
}

// CardHandler serves catalog lookups and raw searches
type CardHandler struct {
	catalog  catalog.Service
	searcher CardSearcher
}

// NewCardHandler creates a new card handler
func NewCardHandler(cat catalog.Service, searcher CardSearcher) *CardHandler {
	return &CardHandler{catalog: cat, searcher: searcher}
}

// HandleSearch passes a query through to the card search service. No
// catalog entries are created.
// GET /api/v1/cards/search?q=
func (h *CardHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query, ok := GetQueryParam(r, w, "q")
	if !ok {
		return
	}
	query = strings.TrimSpace(query)

	results, err := h.searcher.Search(r.Context(), query)
	if err != nil {
		respondServiceError(w, r, "Search cards", err)
		return
	}
	if results == nil {
		results = []domain.CardData{}
	}
	respondJSON(w, http.StatusOK, CardSearchResponse{Query: query, Results: results})
}

// HandleGetCard returns a stored card definition
// GET /api/v1/cards/{mid}
func (h *CardHandler) HandleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.catalog.Find(r.Context(), chi.URLParam(r, "mid"))
	if err != nil {
		respondServiceError(w, r, "Get card", err)
		return
	}
	respondJSON(w, http.StatusOK, card)
}
