package application

import "context"

// LLMClient produces a chat completion for a coaching prompt.
type LLMClient interface {
	Complete(ctx context.Context, systemMessage, userMessage string) (string, error)
}
