package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgUnauthorized       = "Unauthorized"

	ErrMsgValidationFailed  = "Invalid request. Please check your inputs."
	ErrMsgInvalidQuantity   = "Quantity must be between 1 and 100"
	ErrMsgNoSearchResults   = "No card matched that search"
	ErrMsgCardNotInDeck     = "That card is not in the deck"
	ErrMsgCardNotFound      = "Card not found"
	ErrMsgInventoryNotFound = "No inventory for this user. Provision one first."
	ErrMsgDeckNotFound      = "Deck not found"
	ErrMsgNotFound          = "Resource not found"
	ErrMsgConflict          = "The deck was changed by another request. Please try again."
	ErrMsgSearchUnavailable = "Card search is temporarily unavailable. Please try again later."
)

// Success messages for API responses
const (
	MsgDeckDeleted     = "Deck deleted"
	MsgCachePurged     = "Search cache purged"
	MsgInventoryExists = "Inventory already provisioned"
	MsgInventoryReady  = "Inventory provisioned"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages users can act on. The most specific sentinel is checked first.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, identity.ErrNoUser):
		return http.StatusUnauthorized, ErrMsgUnauthorized
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgInvalidQuantity
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrMsgValidationFailed
	case errors.Is(err, domain.ErrNoSearchResults):
		return http.StatusNotFound, ErrMsgNoSearchResults
	case errors.Is(err, domain.ErrCardNotInDeck):
		return http.StatusNotFound, ErrMsgCardNotInDeck
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, ErrMsgCardNotFound
	case errors.Is(err, domain.ErrInventoryNotFound):
		return http.StatusNotFound, ErrMsgInventoryNotFound
	case errors.Is(err, domain.ErrDeckNotFound):
		return http.StatusNotFound, ErrMsgDeckNotFound
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflict
	case errors.Is(err, domain.ErrSearchUnavailable):
		return http.StatusBadGateway, ErrMsgSearchUnavailable
	case errors.Is(err, domain.ErrStore):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// Anything unrecognized is treated as internal and never echoed
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
