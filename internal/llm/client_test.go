package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forever-stories/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientSelection(t *testing.T) {
	cfg := &config.Config{LLMProvider: "anthropic"}
	assert.IsType(t, Stub{}, NewClient(cfg))

	cfg = &config.Config{LLMProvider: "anthropic", AnthropicAPIKey: "k"}
	assert.IsType(t, &AnthropicClient{}, NewClient(cfg))

	cfg = &config.Config{LLMProvider: "openai", OpenAIAPIKey: "k"}
	assert.IsType(t, &OpenAIClient{}, NewClient(cfg))

	// openai provider without a key still degrades to the stub
	cfg = &config.Config{LLMProvider: "openai"}
	assert.IsType(t, Stub{}, NewClient(cfg))
}

func TestStubReturnsNotConfigured(t *testing.T) {
	_, err := Stub{}.Complete(context.Background(), "sys", nil, 100)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		w.Write([]byte(`{"content":[{"type":"text","text":"Hello "},{"type":"text","text":"there"}]}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", srv.URL, "", 5*time.Second)
	out, err := c.Complete(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}}, 256)
	require.NoError(t, err)
	assert.Equal(t, "Hello there", out)
}

func TestAnthropicCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	}))
	defer srv.Close()

	c := NewAnthropicClient("test-key", srv.URL, "", 5*time.Second)
	_, err := c.Complete(context.Background(), "", []Message{{Role: "user", Content: "hi"}}, 256)
	assert.Error(t, err)
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"reply"}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, "", 5*time.Second)
	out, err := c.Complete(context.Background(), "sys", []Message{{Role: "user", Content: "hi"}}, 256)
	require.NoError(t, err)
	assert.Equal(t, "reply", out)
}
