package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiRequest(t *testing.T) {
	contents, cfg := geminiRequest(Request{System: "be brief", User: "hoops?", MaxTokens: 500, Temperature: 0.7})

	require.NotNil(t, cfg.SystemInstruction)
	assert.Empty(t, cfg.SystemInstruction.Role)
	require.Len(t, cfg.SystemInstruction.Parts, 1)
	assert.Equal(t, "be brief", cfg.SystemInstruction.Parts[0].Text)
	assert.Equal(t, int32(500), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, float32(0.7), *cfg.Temperature)

	require.Len(t, contents, 1)
	assert.Equal(t, genai.RoleUser, contents[0].Role)
	assert.Equal(t, "hoops?", contents[0].Parts[0].Text)
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(t.Context(), GeminiConfig{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
