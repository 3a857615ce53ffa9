package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/DeckBuilder_Go/internal/config"
	"github.com/osse101/DeckBuilder_Go/internal/database"
	"github.com/osse101/DeckBuilder_Go/internal/database/memory"
	"github.com/osse101/DeckBuilder_Go/internal/database/postgres"
	"github.com/osse101/DeckBuilder_Go/internal/repository"
)

// Store is the selected repository.Store together with its release hook
type Store struct {
	repository.Store
	Close func()
}

// OpenStore returns the store named by cfg.StoreDriver. The postgres driver
// connects a pool and applies pending migrations before returning.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	if !cfg.UsesPostgres() {
		slog.Warn(LogMsgStoreMemory)
		return &Store{Store: memory.NewStore(), Close: func() {}}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}
	if err := database.Migrate(ctx, pool, database.MigrateUp); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	slog.Info(LogMsgStorePostgres, "host", cfg.DBHost, "db", cfg.DBName, "max_conns", cfg.DBMaxConns)
	return &Store{Store: postgres.NewStore(pool), Close: pool.Close}, nil
}
