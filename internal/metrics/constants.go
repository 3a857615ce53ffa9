package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Deck metric names
const (
	MetricNameDecksCreated      = "decks_created_total"
	MetricNameDecksDeleted      = "decks_deleted_total"
	MetricNameCardsAdded        = "deck_cards_added_total"
	MetricNameCardsRemoved      = "deck_cards_removed_total"
	MetricNameDeckLineConflicts = "deck_line_conflicts_total"
)

// Catalog and search metric names
const (
	MetricNameCatalogCardsCreated = "catalog_cards_created_total"
	MetricNameCatalogCacheLookups = "catalog_cache_lookups_total"
	MetricNameCardSearchRequests  = "card_search_requests_total"
	MetricNameCardSearchDuration  = "card_search_duration_seconds"
	MetricNameCardSearchCache     = "card_search_cache_lookups_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Deck metric help text
const (
	HelpTextDecksCreated      = "Total number of decks created"
	HelpTextDecksDeleted      = "Total number of decks deleted"
	HelpTextCardsAdded        = "Total number of card copies added to decks"
	HelpTextCardsRemoved      = "Total number of card copies removed from decks"
	HelpTextDeckLineConflicts = "Deck line uniqueness conflicts, by how they were resolved"
)

// Catalog and search metric help text
const (
	HelpTextCatalogCardsCreated = "Total number of card definitions added to the catalog"
	HelpTextCatalogCacheLookups = "Catalog cache lookups by result"
	HelpTextCardSearchRequests  = "Remote card search requests by outcome"
	HelpTextCardSearchDuration  = "Remote card search latency in seconds"
	HelpTextCardSearchCache     = "Card search result cache lookups by result"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelResult  = "result"
	LabelOutcome = "outcome"
)

// Label values
const (
	ResultHit  = "hit"
	ResultMiss = "miss"

	OutcomeNewLine   = "new_line"
	OutcomeIncrement = "increment"
	OutcomeDecrement = "decrement"
	OutcomeLineGone  = "line_removed"

	ConflictRetried = "retried"
	ConflictFailed  = "failed"

	SearchOK      = "ok"
	SearchEmpty   = "empty"
	SearchError   = "error"
	UnmatchedPath = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SearchLatencyBuckets covers the remote search API, which is slower and
// rate limited
var SearchLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}
