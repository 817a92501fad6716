package output

import "context"

type AssistantPort interface {
	Ask(ctx context.Context, prompt string) (string, error)
}
