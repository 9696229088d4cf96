package llm

import "context"

// Stub stands in when no provider key is configured.
type Stub struct{}

func (Stub) Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error) {
	return "", ErrNotConfigured
}
