package service

import (
	"context"
	"sync"

	"fixbridge/internal/domain/entity"
)

// Reply is the settled outcome of a handler. A nil Message means nothing is
// sent back.
type Reply struct {
	Message *entity.RelayMessage
	Err     error
}

// Handler processes one inbound message and returns a future that resolves
// once the exchange may be closed.
type Handler func(ctx context.Context, msg entity.RelayMessage) <-chan Reply

type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[entity.MessageType]Handler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[entity.MessageType]Handler),
	}
}

// Register replaces any handler already bound to t.
func (r *HandlerRegistry) Register(t entity.MessageType, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t] = h
}

func (r *HandlerRegistry) Get(t entity.MessageType) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[t]
	return h, ok
}

// Resolved returns an already-settled future.
func Resolved(msg *entity.RelayMessage, err error) <-chan Reply {
	ch := make(chan Reply, 1)
	ch <- Reply{Message: msg, Err: err}
	close(ch)
	return ch
}
