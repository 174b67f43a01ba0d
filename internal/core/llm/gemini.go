package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, c GeminiConfig) (*GeminiClient, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	// the chat default is an OpenAI model name
	if c.Model == "" || c.Model == DefaultOpenAIModel {
		c.Model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: c.Model, timeout: c.Timeout}, nil
}

func (g *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	contents, cfg := geminiRequest(req)
	res, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// geminiRequest maps req onto the genai call. The system prompt carries no
// role; only the user turn does.
func geminiRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{genai.NewPartFromText(req.System)}},
		MaxOutputTokens:   int32(req.MaxTokens),
		Temperature:       genai.Ptr(req.Temperature),
	}
	return []*genai.Content{genai.NewContentFromText(req.User, genai.RoleUser)}, cfg
}
