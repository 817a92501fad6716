package output

import (
	"context"

	"fixbridge/internal/domain/entity"
)

// BrowserPort is the page context: it reports pointer events and resolves
// elements under a position.
type BrowserPort interface {
	Open(ctx context.Context, url string) error
	WatchPointer(ctx context.Context, fn func(entity.PointerEvent)) error
	ElementAt(ctx context.Context, pos entity.Position) (*entity.ElementDescriptor, error)
	Snapshot(ctx context.Context, pos entity.Position) ([]byte, error)

	CurrentURL() string
	Close()
}
