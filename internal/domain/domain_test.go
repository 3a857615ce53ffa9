package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorHierarchy(t *testing.T) {
	assert.ErrorIs(t, ErrNoSearchResults, ErrNotFound)
	assert.ErrorIs(t, ErrCardNotInDeck, ErrNotFound)
	assert.ErrorIs(t, ErrCardNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrInvalidQuantity, ErrValidation)

	// Ownership failures are deliberately not generic not-found errors
	assert.False(t, errors.Is(ErrDeckNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrInventoryNotFound, ErrNotFound))

	wrapped := fmt.Errorf("%w: %q", ErrNoSearchResults, "Shock")
	assert.ErrorIs(t, wrapped, ErrNoSearchResults)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Input:  DeckInput{Name: " ", Format: "Modern"},
		Fields: map[string]string{"name": "is required", "format": "too long"},
	}
	assert.Equal(t, "validation failed: format: too long, name: is required", err.Error())
	assert.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("create deck: %w", err), &ve))
	assert.Equal(t, " ", ve.Input.Name)

	assert.Equal(t, ErrMsgValidation, (&ValidationError{}).Error())
}

func TestDeck_FindLineAndCardCount(t *testing.T) {
	d := &Deck{Lines: []DeckLine{
		{Card: CardDefinition{MID: "LB1"}, Quantity: 4},
		{Card: CardDefinition{MID: "MT1"}, Quantity: 20},
	}}

	assert.Equal(t, 1, d.FindLine("MT1"))
	assert.Equal(t, -1, d.FindLine("SH1"))
	assert.Equal(t, 24, d.CardCount())
	assert.Equal(t, 0, (&Deck{}).CardCount())
}
