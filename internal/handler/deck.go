package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/DeckBuilder_Go/internal/deck"
	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
	"github.com/osse101/DeckBuilder_Go/internal/inventory"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
)

// AddCardRequest adds copies of the first card matching Query
type AddCardRequest struct {
	Query    string `json:"query" validate:"required,notblank,max=200"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1,max=100"`
}

// DeckListResponse wraps a deck listing
type DeckListResponse struct {
	Decks []domain.DeckSummary `json:"decks"`
}

// DeckHandler serves deck and inventory operations for the current user
type DeckHandler struct {
	decks     deck.Service
	inventory inventory.Service
	ids       identity.Provider
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(decks deck.Service, inv inventory.Service, ids identity.Provider) *DeckHandler {
	return &DeckHandler{decks: decks, inventory: inv, ids: ids}
}

// HandleListDecks lists the user's decks, fuzzy-filtered by name when q is set
// GET /api/v1/decks?q=
func (h *DeckHandler) HandleListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}

	var (
		decks []domain.DeckSummary
		err   error
	)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		decks, err = h.inventory.FindDecks(r.Context(), userID, q)
	} else {
		decks, err = h.inventory.ListDecks(r.Context(), userID)
	}
	if err != nil {
		respondServiceError(w, r, "List decks", err)
		return
	}
	respondJSON(w, http.StatusOK, DeckListResponse{Decks: decks})
}

// HandleCreateDeck creates an empty deck. Invalid input is answered with
// 400 and the submitted values echoed back.
// POST /api/v1/decks
func (h *DeckHandler) HandleCreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}

	var input domain.DeckInput
	if err := decodeRequest(r, w, &input, "Create deck"); err != nil {
		return
	}

	created, err := h.inventory.CreateDeck(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, r, "Create deck", err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// HandleGetDeck returns a deck with its lines
// GET /api/v1/decks/{deckID}
func (h *DeckHandler) HandleGetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}

	d, err := h.decks.GetDeck(r.Context(), userID, deckIDParam(r))
	if err != nil {
		respondServiceError(w, r, "Get deck", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// HandleDeleteDeck deletes a deck and all of its lines
// DELETE /api/v1/decks/{deckID}
func (h *DeckHandler) HandleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}

	if err := h.inventory.DeleteDeck(r.Context(), userID, deckIDParam(r)); err != nil {
		respondServiceError(w, r, "Delete deck", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeckDeleted})
}

// HandleAddCard searches for a card and adds it to the deck
// POST /api/v1/decks/{deckID}/cards
func (h *DeckHandler) HandleAddCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}

	var req AddCardRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add card"); err != nil {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	logger.FromContext(r.Context()).Debug("Add card request",
		"user_id", userID, "deck_id", deckIDParam(r), "query", req.Query, "quantity", req.Quantity)

	d, err := h.decks.AddCards(r.Context(), userID, deckIDParam(r), req.Query, req.Quantity)
	if err != nil {
		respondServiceError(w, r, "Add card", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// HandleRemoveCard removes copies of a card, one unless ?quantity= says otherwise
// DELETE /api/v1/decks/{deckID}/cards/{mid}
func (h *DeckHandler) HandleRemoveCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r, h.ids)
	if !ok {
		return
	}
	quantity, ok := GetOptionalIntParam(r, w, "quantity", 1)
	if !ok {
		return
	}

	d, err := h.decks.RemoveCards(r.Context(), userID, deckIDParam(r), chi.URLParam(r, "mid"), quantity)
	if err != nil {
		respondServiceError(w, r, "Remove card", err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}
