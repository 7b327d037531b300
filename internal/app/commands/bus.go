// Package commands routes write-side use cases through a dispatchable bus so
// cross-cutting behavior (logging, idempotency, outbox flush) can wrap them.
package commands

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrHandlerNotFound   = errors.New("commands: no handler registered for command")
	ErrUnexpectedCommand = errors.New("commands: handler received unexpected command type")
	ErrUnexpectedResult  = errors.New("commands: handler returned unexpected result type")
)

// Command is a routed write request. Key identifies the handler.
type Command interface {
	Key() string
}

// Handler processes one command kind. The returned value carries the use
// case's Result; the error channel is reserved for dispatch-level problems.
type Handler interface {
	Handle(ctx context.Context, cmd Command) (any, error)
}

type Bus interface {
	Dispatch(ctx context.Context, cmd Command) (any, error)
}

// InMemoryBus is a key-routed handler table.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]Handler)}
}

// RegisterHandler binds a handler to a command key, replacing any previous one.
func RegisterHandler(bus *InMemoryBus, key string, h Handler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = h
}

func (b *InMemoryBus) Dispatch(ctx context.Context, cmd Command) (any, error) {
	b.mu.RLock()
	h, ok := b.handlers[cmd.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, ErrHandlerNotFound
	}
	return h.Handle(ctx, cmd)
}

// Dispatch routes the command and asserts the handler's result type.
func Dispatch[R any](ctx context.Context, bus Bus, cmd Command) (R, error) {
	var zero R
	out, err := bus.Dispatch(ctx, cmd)
	if err != nil {
		return zero, err
	}
	r, ok := out.(R)
	if !ok {
		return zero, ErrUnexpectedResult
	}
	return r, nil
}
