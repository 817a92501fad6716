// Package host provides the messaging capabilities the relay can run on.
package host

import (
	"context"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"
)

var _ output.MessagingHost = (*Noop)(nil)

// Noop is the standalone-preview host: there is nobody to talk to.
type Noop struct {
	logger output.LoggerPort
}

func NewNoop(logger output.LoggerPort) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) Available() bool { return false }

func (n *Noop) Post(ctx context.Context, msg entity.RelayMessage) error {
	n.logger.Debug("Message dropped, no host", "type", msg.Type)
	return nil
}

func (n *Noop) Inbox() <-chan entity.RelayMessage { return nil }

func (n *Noop) ShowUI(ctx context.Context, opts entity.SurfaceOptions) error {
	n.logger.Debug("UI surface not available", "width", opts.Width, "height", opts.Height)
	return nil
}

func (n *Noop) Close() error { return nil }
