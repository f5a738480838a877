package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/core"
)

// Client is an implementation of the TextGenerator interface that talks to a
// hosted generation endpoint over plain HTTP: API key as a query parameter,
// JSON body {prompt:{text}, maxOutputTokens}, response shape variable.
type Client struct {
	httpClient *http.Client
	apiKey     string
	endpoint   string
	modelName  string
	maxTokens  int
	logger     *zap.Logger
}

type promptBody struct {
	Text string `json:"text"`
}

type generateRequest struct {
	Prompt          promptBody `json:"prompt"`
	MaxOutputTokens int        `json:"maxOutputTokens"`
}

// NewClient creates a new hosted-endpoint client
func NewClient(apiKey, endpoint, modelName string, maxTokens int, logger *zap.Logger) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		apiKey:     apiKey,
		endpoint:   endpoint,
		modelName:  modelName,
		maxTokens:  maxTokens,
		logger:     logger,
	}
}

// ModelName identifies the backing model
func (c *Client) ModelName() string {
	return c.modelName
}

// GenerateText issues a single generation request and returns the raw text
// response. It fails when the API key is absent or the endpoint returns a
// non-success status.
func (c *Client) GenerateText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("generation endpoint: %w", core.ErrMissingCredentials)
	}
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	payload, err := json.Marshal(generateRequest{
		Prompt:          promptBody{Text: prompt},
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"?key="+url.QueryEscape(c.apiKey), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Generation endpoint returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	return extractGeneratedText(body), nil
}

// extractGeneratedText performs a best-effort field lookup over the known
// response shapes, in order, falling back to the raw serialized response when
// none match.
func extractGeneratedText(body []byte) string {
	// Shape A: {"candidates":[{"content":"..."}]}
	var shapeA struct {
		Candidates []struct {
			Content string `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &shapeA); err == nil &&
		len(shapeA.Candidates) > 0 && shapeA.Candidates[0].Content != "" {
		return shapeA.Candidates[0].Content
	}

	// Shape B: {"candidates":[{"content":{"parts":[{"text":"..."}]}}]}
	var shapeB struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &shapeB); err == nil &&
		len(shapeB.Candidates) > 0 &&
		len(shapeB.Candidates[0].Content.Parts) > 0 &&
		shapeB.Candidates[0].Content.Parts[0].Text != "" {
		return shapeB.Candidates[0].Content.Parts[0].Text
	}

	// Shape C: {"output":[{"content":[{"text":"..."}]}]}
	var shapeC struct {
		Output []struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.Unmarshal(body, &shapeC); err == nil &&
		len(shapeC.Output) > 0 &&
		len(shapeC.Output[0].Content) > 0 &&
		shapeC.Output[0].Content[0].Text != "" {
		return shapeC.Output[0].Content[0].Text
	}

	return string(body)
}
