package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/DeckBuilder_Go/internal/bootstrap"
	"github.com/osse101/DeckBuilder_Go/internal/cardsearch"
	"github.com/osse101/DeckBuilder_Go/internal/catalog"
	"github.com/osse101/DeckBuilder_Go/internal/config"
	"github.com/osse101/DeckBuilder_Go/internal/deck"
	"github.com/osse101/DeckBuilder_Go/internal/identity"
	"github.com/osse101/DeckBuilder_Go/internal/inventory"
	"github.com/osse101/DeckBuilder_Go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings(cfg.StoreDriver)
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	search := cardsearch.NewCachingSearcher(
		cardsearch.NewClient(cardsearch.Config{
			BaseURL:        cfg.CardSearchURL,
			RequestsPerSec: cfg.CardSearchRate,
			Timeout:        cfg.CardSearchTimeout,
		}),
		cfg.SearchCacheSize,
		cfg.SearchCacheTTL,
	)
	catalogSvc := catalog.NewService(store, cfg.CardCacheSize, cfg.CardCacheTTL)

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Services{
		Store:       store,
		Decks:       deck.NewService(store, catalogSvc, search),
		Inventory:   inventory.NewService(store),
		Catalog:     catalogSvc,
		Searcher:    search,
		SearchCache: search,
		Provisioner: identity.NewProvisioner(store),
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, srv, store)
}
