package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"glimmr/internal/core/config"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func TestOpenAI_Complete(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Try rose gold hoops."}}]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/"})
	defer c.httpClient.CloseIdleConnections()

	out, err := c.Complete(context.Background(), Request{System: "sys", User: "hi", MaxTokens: 500, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "Try rose gold hoops.", out)

	assert.Equal(t, DefaultOpenAIModel, got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-6)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openAIMessage{Role: "system", Content: "sys"}, got.Messages[0])
	assert.Equal(t, openAIMessage{Role: "user", Content: "hi"}, got.Messages[1])
}

func TestOpenAI_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "bad", BaseURL: srv.URL})
	defer c.httpClient.CloseIdleConnections()

	_, err := c.Complete(context.Background(), Request{User: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAI(OpenAIConfig{APIKey: "k", BaseURL: srv.URL})
	defer c.httpClient.CloseIdleConnections()

	_, err := c.Complete(context.Background(), Request{User: "hi"})
	assert.ErrorContains(t, err, "no completion")
}

func TestNew_MissingKey(t *testing.T) {
	c, err := New(context.Background(), config.Chat{Provider: "openai"}, zap.NewNop())
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), Request{User: "hi"})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.Chat{Provider: "llama", APIKey: "k"}, zap.NewNop())
	assert.Error(t, err)
}
