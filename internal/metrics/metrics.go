package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Deck Metrics
var (
	DecksCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDecksCreated,
			Help: HelpTextDecksCreated,
		},
	)

	DecksDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDecksDeleted,
			Help: HelpTextDecksDeleted,
		},
	)

	CardsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsAdded,
			Help: HelpTextCardsAdded,
		},
		[]string{LabelOutcome},
	)

	CardsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardsRemoved,
			Help: HelpTextCardsRemoved,
		},
		[]string{LabelOutcome},
	)

	DeckLineConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDeckLineConflicts,
			Help: HelpTextDeckLineConflicts,
		},
		[]string{LabelResult},
	)
)

// Catalog and Search Metrics
var (
	CatalogCardsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCardsCreated,
			Help: HelpTextCatalogCardsCreated,
		},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogCacheLookups,
			Help: HelpTextCatalogCacheLookups,
		},
		[]string{LabelResult},
	)

	CardSearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardSearchRequests,
			Help: HelpTextCardSearchRequests,
		},
		[]string{LabelOutcome},
	)

	CardSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCardSearchDuration,
			Help:    HelpTextCardSearchDuration,
			Buckets: SearchLatencyBuckets,
		},
	)

	CardSearchCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCardSearchCache,
			Help: HelpTextCardSearchCache,
		},
		[]string{LabelResult},
	)
)
