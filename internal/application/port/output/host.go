package output

import (
	"context"

	"fixbridge/internal/domain/entity"
)

// MessagingHost is the capability the relay talks through. An unavailable
// host accepts every call and does nothing.
type MessagingHost interface {
	Available() bool
	Post(ctx context.Context, msg entity.RelayMessage) error
	Inbox() <-chan entity.RelayMessage
	ShowUI(ctx context.Context, opts entity.SurfaceOptions) error
	Close() error
}
