package llm

import (
	"context"
	"errors"

	"github.com/forever-stories/backend/internal/config"
)

// ErrNotConfigured is returned when no provider API key is set. Callers
// decide what fallback text to serve.
var ErrNotConfigured = errors.New("llm provider not configured")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client is a minimal chat-completion interface. Implementations send the
// system prompt and conversation and return the assistant's text.
type Client interface {
	Complete(ctx context.Context, system string, messages []Message, maxTokens int) (string, error)
}

// NewClient selects a provider from config. A client is always returned;
// when no key is configured the stub answers every call with
// ErrNotConfigured.
func NewClient(cfg *config.Config) Client {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel, cfg.AITimeout)
		}
	default:
		if cfg.AnthropicAPIKey != "" {
			return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicAPIURL, cfg.AnthropicModel, cfg.AITimeout)
		}
	}
	return Stub{}
}
