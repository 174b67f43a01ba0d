// Package llm wraps hosted chat-completion providers behind one
// single-turn interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"glimmr/internal/core/config"
)

var ErrNoAPIKey = errors.New("llm: API key not configured")

// Request is one system prompt plus one user turn.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// New builds the provider named by c.Provider. A missing key is not fatal:
// the server starts and every completion reports ErrNoAPIKey.
func New(ctx context.Context, c config.Chat, l *zap.Logger) (Completer, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		l.Warn("chat api key is empty; chat endpoints will fail", zap.String("provider", c.Provider))
		return CompleterFunc(func(context.Context, Request) (string, error) { return "", ErrNoAPIKey }), nil
	}
	switch c.Provider {
	case "", "openai":
		return NewOpenAI(OpenAIConfig{
			APIKey:  c.APIKey,
			BaseURL: c.BaseURL,
			Model:   c.Model,
			Timeout: c.Timeout(),
		}), nil
	case "gemini":
		return NewGemini(ctx, GeminiConfig{
			APIKey:  c.APIKey,
			Model:   c.Model,
			Timeout: c.Timeout(),
		})
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
}
