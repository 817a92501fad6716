package output

import (
	"context"

	"fixbridge/internal/domain/entity"
)

type UserInteractionPort interface {
	ShowElement(ctx context.Context, captured *entity.CapturedElement)
	ShowPrompt(ctx context.Context, prompt string)
	ShowStatus(ctx context.Context, status string, isError bool)
}
