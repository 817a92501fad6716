package host

import (
	"context"
	"errors"
	"sync"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

var ErrOutboxFull = errors.New("outbox full, message dropped")

var _ output.MessagingHost = (*Channel)(nil)

// Channel is an in-process host. The controller side uses Send and Outbox.
type Channel struct {
	in  chan entity.RelayMessage
	out chan entity.RelayMessage

	mu      sync.RWMutex
	closed  bool
	surface *entity.SurfaceOptions

	// senders tracks Sends in flight so Close can close in safely.
	senders sync.WaitGroup
	done    chan struct{}
}

func NewChannel(buffer int) *Channel {
	return &Channel{
		in:   make(chan entity.RelayMessage, buffer),
		out:  make(chan entity.RelayMessage, buffer),
		done: make(chan struct{}),
	}
}

func (c *Channel) Available() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed
}

// Post never blocks: a full outbox drops the message.
func (c *Channel) Post(ctx context.Context, msg entity.RelayMessage) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return entity.NewHostUnavailable("channel.post")
	}
	select {
	case c.out <- msg:
		return nil
	default:
		return ErrOutboxFull
	}
}

func (c *Channel) Inbox() <-chan entity.RelayMessage {
	return c.in
}

func (c *Channel) ShowUI(ctx context.Context, opts entity.SurfaceOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surface = &opts
	return nil
}

// Surface returns the last requested surface, if any.
func (c *Channel) Surface() (entity.SurfaceOptions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.surface == nil {
		return entity.SurfaceOptions{}, false
	}
	return *c.surface, true
}

// Send delivers msg to the relay side. It blocks until the relay reads it,
// ctx is done or the channel is closed.
func (c *Channel) Send(ctx context.Context, msg entity.RelayMessage) error {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return entity.NewHostUnavailable("channel.send")
	}
	c.senders.Add(1)
	c.mu.RUnlock()
	defer c.senders.Done()

	select {
	case c.in <- msg:
		return nil
	case <-c.done:
		return entity.NewHostUnavailable("channel.send")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Channel) Outbox() <-chan entity.RelayMessage {
	return c.out
}

// Close releases pending Sends and then closes the inbox.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	c.senders.Wait()
	close(c.in)
	return nil
}
