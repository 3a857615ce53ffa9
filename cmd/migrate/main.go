// Command migrate applies or inspects the embedded database migrations.
//
//	migrate [up|down|status]
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/DeckBuilder_Go/internal/config"
	"github.com/osse101/DeckBuilder_Go/internal/database"
	"github.com/osse101/DeckBuilder_Go/internal/logger"
)

func main() {
	direction := database.MigrateUp
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	if err := run(context.Background(), direction); err != nil {
		slog.Error("Migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, direction string) error {
	switch direction {
	case database.MigrateUp, database.MigrateDown, database.MigrateStatus:
	default:
		return fmt.Errorf("unknown direction %q, want up, down or status", direction)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, false))

	if !cfg.UsesPostgres() {
		return fmt.Errorf("STORE_DRIVER is %q, migrations only apply to %s", cfg.StoreDriver, config.StoreDriverPostgres)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1, cfg.DBMaxIdle, cfg.DBMaxLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	return database.Migrate(ctx, pool, direction)
}
