package input

import (
	"context"

	"fixbridge/internal/domain/entity"
)

type InteractionRecorder interface {
	Record(ctx context.Context, ev entity.PointerEvent) bool
	Current() entity.Position
}
