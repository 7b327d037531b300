// Package queries mirrors the command bus for the read side.
package queries

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrHandlerNotFound  = errors.New("queries: no handler registered for query")
	ErrUnexpectedQuery  = errors.New("queries: handler received unexpected query type")
	ErrUnexpectedResult = errors.New("queries: handler returned unexpected result type")
)

type Query interface {
	Key() string
}

type Handler interface {
	Handle(ctx context.Context, q Query) (any, error)
}

type Bus interface {
	Ask(ctx context.Context, q Query) (any, error)
}

type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{handlers: make(map[string]Handler)}
}

func RegisterHandler(bus *InMemoryBus, key string, h Handler) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[key] = h
}

func (b *InMemoryBus) Ask(ctx context.Context, q Query) (any, error) {
	b.mu.RLock()
	h, ok := b.handlers[q.Key()]
	b.mu.RUnlock()
	if !ok {
		return nil, ErrHandlerNotFound
	}
	return h.Handle(ctx, q)
}

// Ask routes the query and asserts the handler's result type.
func Ask[R any](ctx context.Context, bus Bus, q Query) (R, error) {
	var zero R
	out, err := bus.Ask(ctx, q)
	if err != nil {
		return zero, err
	}
	r, ok := out.(R)
	if !ok {
		return zero, ErrUnexpectedResult
	}
	return r, nil
}
