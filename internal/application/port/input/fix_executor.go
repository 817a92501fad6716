package input

import (
	"context"

	"fixbridge/internal/domain/entity"
)

type FixExecutor interface {
	Execute(ctx context.Context, req entity.FixRequest) (*entity.FixResult, error)
}
