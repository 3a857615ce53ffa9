package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Validation errors
	ErrMsgValidation = "validation failed"

	// Lookup errors
	ErrMsgNotFound          = "not found"
	ErrMsgNoSearchResults   = "card search returned no results"
	ErrMsgCardNotInDeck     = "card is not in deck"
	ErrMsgCardNotFound      = "card not found in catalog"
	ErrMsgInventoryNotFound = "user inventory not found"
	ErrMsgDeckNotFound      = "deck not found"

	// Concurrency errors
	ErrMsgConflict = "conflicting concurrent update"

	// Database/System errors
	ErrMsgStore             = "store error"
	ErrMsgTxClosed          = "tx is closed"
	ErrMsgSearchUnavailable = "card search unavailable"

	// Input errors
	ErrMsgInvalidQuantity = "quantity must be between 1 and the per-request maximum"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrValidation = errors.New(ErrMsgValidation)

	ErrNotFound = errors.New(ErrMsgNotFound)

	// Specific not-found cases; errors.Is(err, ErrNotFound) holds for each.
	ErrNoSearchResults = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgNoSearchResults)
	ErrCardNotInDeck   = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgCardNotInDeck)
	ErrCardNotFound    = fmt.Errorf("%w: %s", ErrNotFound, ErrMsgCardNotFound)

	ErrInventoryNotFound = errors.New(ErrMsgInventoryNotFound)
	ErrDeckNotFound      = errors.New(ErrMsgDeckNotFound)

	ErrConflict = errors.New(ErrMsgConflict)

	ErrStore             = errors.New(ErrMsgStore)
	ErrSearchUnavailable = errors.New(ErrMsgSearchUnavailable)

	ErrInvalidQuantity = fmt.Errorf("%w: %s", ErrValidation, ErrMsgInvalidQuantity)
)

// ValidationError reports invalid deck input. Input holds the submitted
// values unchanged so the caller can redisplay them.
type ValidationError struct {
	Input  DeckInput
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrMsgValidation
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrMsgValidation + ": " + strings.Join(parts, ", ")
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
