package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

func TestGenerateText(t *testing.T) {
	var gotRequest generateRequest
	var gotKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":"generated answer"}]}`))
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL, "test-model", 300, zap.NewNop())

	out, err := client.GenerateText(context.Background(), "the prompt", 120)

	require.NoError(t, err)
	assert.Equal(t, "generated answer", out)
	assert.Equal(t, "secret-key", gotKey)
	assert.Equal(t, "the prompt", gotRequest.Prompt.Text)
	assert.Equal(t, 120, gotRequest.MaxOutputTokens)
}

func TestGenerateTextDefaultMaxTokens(t *testing.T) {
	var gotRequest generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Write([]byte(`{"candidates":[{"content":"ok"}]}`))
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL, "test-model", 250, zap.NewNop())

	_, err := client.GenerateText(context.Background(), "prompt", 0)

	require.NoError(t, err)
	assert.Equal(t, 250, gotRequest.MaxOutputTokens)
}

func TestGenerateTextMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://unused", "test-model", 300, zap.NewNop())

	_, err := client.GenerateText(context.Background(), "prompt", 100)

	assert.True(t, errors.Is(err, core.ErrMissingCredentials))
}

func TestGenerateTextNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("secret-key", server.URL, "test-model", 300, zap.NewNop())

	_, err := client.GenerateText(context.Background(), "prompt", 100)

	assert.ErrorContains(t, err, "429")
}

func TestExtractGeneratedText(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{
			name:     "flat candidate content",
			body:     `{"candidates":[{"content":"flat answer"}]}`,
			expected: "flat answer",
		},
		{
			name:     "nested parts content",
			body:     `{"candidates":[{"content":{"parts":[{"text":"nested answer"}]}}]}`,
			expected: "nested answer",
		},
		{
			name:     "output array content",
			body:     `{"output":[{"content":[{"text":"output answer"}]}]}`,
			expected: "output answer",
		},
		{
			name:     "unknown shape falls back to raw body",
			body:     `{"something":"else"}`,
			expected: `{"something":"else"}`,
		},
		{
			name:     "non-JSON body falls back to raw body",
			body:     "plain text answer",
			expected: "plain text answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractGeneratedText([]byte(tt.body)))
		})
	}
}

func TestModelName(t *testing.T) {
	client := NewClient("key", "http://unused", "gemini-2.0-flash", 300, zap.NewNop())
	assert.Equal(t, "gemini-2.0-flash", client.ModelName())
}
