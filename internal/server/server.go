package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/deck"
	"github.com/osse101/DeckBuilder_Go/internal/handler"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
	"github.com/osse101/DeckBuilder_Go/internal/inventory"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	// Detector overrides the default per-client limiter, for tests
	Detector *SuspiciousActivityDetector
}

// Services are the collaborators the routes call into
type Services struct {
	Store       handler.Pinger
	Decks       deck.Service
	Inventory   inventory.Service
	Catalog     catalog.Service
	Searcher    handler.CardSearcher
	SearchCache handler.SearchCache
	Provisioner handler.InventoryProvisioner
	Identity    identity.Provider
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc),
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the route tree with the full middleware stack
func NewRouter(opts Options, svc Services) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	detector := opts.Detector
	if detector == nil {
		detector = NewSuspiciousActivityDetector()
	}
	if svc.Identity == nil {
		svc.Identity = identity.ContextProvider{}
	}

	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.Store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	deckHandler := handler.NewDeckHandler(svc.Decks, svc.Inventory, svc.Identity)
	cardHandler := handler.NewCardHandler(svc.Catalog, svc.Searcher)
	adminCacheHandler := handler.NewAdminCacheHandler(svc.Catalog, svc.SearchCache)

	r.Route("/api/v1", func(r chi.Router) {
		// Routes acting for a user
		r.Group(func(r chi.Router) {
			r.Use(identity.Middleware)

			r.Route("/decks", func(r chi.Router) {
				r.Get("/", deckHandler.HandleListDecks)
				r.Post("/", deckHandler.HandleCreateDeck)
				r.Route("/{deckID}", func(r chi.Router) {
					r.Get("/", deckHandler.HandleGetDeck)
					r.Delete("/", deckHandler.HandleDeleteDeck)
					r.Post("/cards", deckHandler.HandleAddCard)
					r.Delete("/cards/{mid}", deckHandler.HandleRemoveCard)
				})
			})

			r.Post("/users/provision", handler.HandleProvisionUser(svc.Provisioner, svc.Identity))
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/search", cardHandler.HandleSearch)
			r.Get("/{mid}", cardHandler.HandleGetCard)
		})

		r.Route("/admin/cache", func(r chi.Router) {
			r.Get("/stats", adminCacheHandler.HandleGetCacheStats)
			r.Post("/purge", adminCacheHandler.HandlePurgeSearchCache)
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip probes and scrapes
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitized := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitized[k] = []string{RedactedValue}
			} else {
				sanitized[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitized)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server; it returns http.ErrServerClosed after Stop
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
