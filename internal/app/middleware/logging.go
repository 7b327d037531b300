package middleware

import (
	"context"
	"log/slog"
	"time"

	"bookify/internal/app/commands"
	"bookify/internal/app/queries"
)

// Logging reports every dispatched command with its duration and outcome.
func Logging(logger *slog.Logger) CommandMiddleware {
	if logger == nil {
		panic("middleware: logger required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			started := time.Now()
			res, err := nextFn(ctx, cmd)
			if err != nil {
				logger.Error("command failed", "command", cmd.Key(), "duration", time.Since(started), "error", err)
				return nil, err
			}
			logger.Info("command handled", "command", cmd.Key(), "duration", time.Since(started))
			return res, nil
		})
	}
}

// QueryLogging reports dispatched queries at debug level.
func QueryLogging(logger *slog.Logger) QueryMiddleware {
	if logger == nil {
		panic("middleware: logger required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			started := time.Now()
			res, err := nextFn(ctx, q)
			if err != nil {
				logger.Error("query failed", "query", q.Key(), "duration", time.Since(started), "error", err)
				return nil, err
			}
			logger.Debug("query handled", "query", q.Key(), "duration", time.Since(started))
			return res, nil
		})
	}
}
