package output

import (
	"context"

	"fixbridge/internal/domain/entity"
)

// Slot is a single-value storage medium. Load reports ok=false when nothing
// has been stored yet.
type Slot[T any] interface {
	Load() (value T, ok bool, err error)
	Save(value T) error
}

type PositionStore = Slot[entity.Position]

type ElementStore interface {
	Slot[entity.CapturedElement]
	Watch(ctx context.Context, fn func(entity.CapturedElement)) error
}
