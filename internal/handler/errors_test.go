package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantMsg    string
	}{
		{nil, http.StatusInternalServerError, ErrMsgUnknownError},
		{identity.ErrNoUser, http.StatusUnauthorized, ErrMsgUnauthorized},
		{fmt.Errorf("%w: got 0", domain.ErrInvalidQuantity), http.StatusBadRequest, ErrMsgInvalidQuantity},
		{fmt.Errorf("%w: query", domain.ErrValidation), http.StatusBadRequest, ErrMsgValidationFailed},
		{fmt.Errorf("%w: \"x\"", domain.ErrNoSearchResults), http.StatusNotFound, ErrMsgNoSearchResults},
		{domain.ErrCardNotInDeck, http.StatusNotFound, ErrMsgCardNotInDeck},
		{domain.ErrCardNotFound, http.StatusNotFound, ErrMsgCardNotFound},
		{domain.ErrInventoryNotFound, http.StatusNotFound, ErrMsgInventoryNotFound},
		{fmt.Errorf("%w: d1", domain.ErrDeckNotFound), http.StatusNotFound, ErrMsgDeckNotFound},
		{domain.ErrNotFound, http.StatusNotFound, ErrMsgNotFound},
		{domain.ErrConflict, http.StatusConflict, ErrMsgConflict},
		{fmt.Errorf("%w: 503", domain.ErrSearchUnavailable), http.StatusBadGateway, ErrMsgSearchUnavailable},
		{fmt.Errorf("%w: commit", domain.ErrStore), http.StatusInternalServerError, ErrMsgGenericServerError},
		{errors.New("secret internal detail"), http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		status, msg := mapServiceErrorToUserMessage(tt.err)
		assert.Equal(t, tt.wantStatus, status, "%v", tt.err)
		assert.Equal(t, tt.wantMsg, msg, "%v", tt.err)
	}
}
