package domain

// Deck limits
const (
	// MaxCopiesPerRequest bounds the quantity accepted by a single add/remove call
	MaxCopiesPerRequest = 100

	// MaxDeckNameLength and MaxFormatLength bound user-supplied deck fields
	MaxDeckNameLength = 100
	MaxFormatLength   = 100
)
