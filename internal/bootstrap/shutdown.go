package bootstrap

import (
	"context"
	"log/slog"
)

// stoppable is satisfied by *server.Server
type stoppable interface {
	Stop(ctx context.Context) error
}

// GracefulShutdown stops the HTTP server so in-flight requests finish, then
// releases the store. Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, srv stoppable, store *Store) {
	slog.Info(LogMsgShuttingDownServer)
	if err := srv.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if store != nil && store.Close != nil {
		slog.Info(LogMsgClosingStore)
		store.Close()
	}

	slog.Info(LogMsgServerStopped)
}
