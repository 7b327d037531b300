package middleware

import (
	"context"

	"bookify/internal/app/commands"
)

// IdempotentCommand is implemented by commands that may be retried by clients.
type IdempotentCommand interface {
	IdempotencyKey() string
}

// IdempotencyStore remembers results of already-processed commands.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (any, bool, error)
	Put(ctx context.Context, key string, value any) error
}

// Idempotency replays the stored result for a key seen before instead of
// re-dispatching the command.
func Idempotency(store IdempotencyStore) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idem, ok := cmd.(IdempotentCommand)
			if !ok || idem.IdempotencyKey() == "" {
				return nextFn(ctx, cmd)
			}
			key := cmd.Key() + ":" + idem.IdempotencyKey()
			if cached, found, err := store.Get(ctx, key); err == nil && found {
				return cached, nil
			}
			res, err := nextFn(ctx, cmd)
			if err != nil {
				return nil, err
			}
			if err := store.Put(ctx, key, res); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
