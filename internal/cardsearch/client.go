// Package cardsearch queries the remote card database for candidate card
// records by name.
package cardsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
)

// Searcher returns candidate cards for a free-text query, best match first.
// An empty result is not an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.CardData, error)
}

// Config configures the remote client
type Config struct {
	BaseURL        string
	RequestsPerSec float64
	Timeout        time.Duration
	MaxResults     int
	MaxRetries     int
	InitialBackoff time.Duration
	UserAgent      string
}

// DefaultConfig returns settings for the public magicthegathering.io API
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		RequestsPerSec: DefaultRequestsPerSec,
		Timeout:        DefaultTimeout,
		MaxResults:     DefaultMaxResults,
		MaxRetries:     DefaultMaxRetries,
		InitialBackoff: DefaultInitialBackoff,
		UserAgent:      DefaultUserAgent,
	}
}

// Client is a rate limited client for the remote card API
type Client struct {
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	baseURL        string
	userAgent      string
	maxResults     int
	maxRetries     int
	initialBackoff time.Duration
}

// NewClient creates a new Client. Zero fields in cfg take their defaults.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = def.RequestsPerSec
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = def.MaxResults
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}

	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		rateLimiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      cfg.UserAgent,
		maxResults:     cfg.MaxResults,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
	}
}

// Search looks up cards by name. Results without a multiverse id cannot be
// stored in the catalog and are dropped.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CardData, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CardData{}, nil
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("pageSize", strconv.Itoa(c.maxResults))
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, cardsPath, params.Encode())

	start := time.Now()
	var resp cardsResponse
	err := c.doRequest(ctx, endpoint, &resp)
	metrics.CardSearchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CardSearchRequests.WithLabelValues(metrics.SearchError).Inc()
		logger.FromContext(ctx).Warn("Card search failed", "query", query, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}

	results := make([]domain.CardData, 0, len(resp.Cards))
	for _, card := range resp.Cards {
		data, ok := card.toCardData()
		if !ok {
			continue
		}
		results = append(results, data)
		if len(results) == c.maxResults {
			break
		}
	}

	if len(results) == 0 {
		metrics.CardSearchRequests.WithLabelValues(metrics.SearchEmpty).Inc()
	} else {
		metrics.CardSearchRequests.WithLabelValues(metrics.SearchOK).Inc()
	}
	logger.FromContext(ctx).Debug("Card search completed", "query", query, "results", len(results))
	return results, nil
}

// doRequest performs a GET with rate limiting, retrying network errors,
// 429 and 5xx responses with exponential backoff.
func (c *Client) doRequest(ctx context.Context, endpoint string, result interface{}) error {
	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoff); err != nil {
				return err
			}
			backoff = min(backoff*2, MaxBackoff)
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		retry, err := c.attempt(ctx, endpoint, result)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			return err
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, endpoint string, result interface{}) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
		if err != nil {
			return true, fmt.Errorf("failed to read response body: %w", err)
		}
		if err := validateResponse(body); err != nil {
			return false, err
		}
		if err := json.Unmarshal(body, result); err != nil {
			return false, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		return false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, errRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		return true, fmt.Errorf("server error (HTTP %d)", resp.StatusCode)
	default:
		return false, fmt.Errorf("unexpected status (HTTP %d)", resp.StatusCode)
	}
}

var errRateLimited = errors.New("rate limited (HTTP 429)")

// validateResponse rejects bodies whose shape does not match the cards schema
func validateResponse(body []byte) error {
	schemas, err := responseSchemas()
	if err != nil {
		return err
	}
	if err := schemas.ValidateBytes(body, cardsResponseSchema); err != nil {
		return fmt.Errorf("malformed card search response: %w", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
