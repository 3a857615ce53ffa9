package cardsearch

import "time"

const (
	DefaultBaseURL        = "https://api.magicthegathering.io"
	DefaultRequestsPerSec = 5
	DefaultTimeout        = 15 * time.Second
	DefaultMaxResults     = 20
	DefaultMaxRetries     = 2
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultUserAgent      = "DeckBuilder/1.0"

	// MaxBackoff caps the wait between retries
	MaxBackoff = 8 * time.Second

	// MaxResponseBytes bounds how much of a response body is read
	MaxResponseBytes = 4 << 20

	cardsPath = "/v1/cards"
)

// Result cache defaults
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 10 * time.Minute

	// SharedSearchTimeout bounds an upstream call shared by coalesced
	// callers; it covers the client's timeout across all retries.
	SharedSearchTimeout = 60 * time.Second
)
