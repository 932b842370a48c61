// Package suggest wraps the generative AI capability that proposes dataset
// metadata. The model call is the one true external dependency of the workflow
// core; everything here degrades to an empty suggestion rather than failing.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Madelsa/Dataset-publishing/internal/entity"
)

// Generator produces free-form model output for a prompt. It is an interface so
// tests can inject a fake and so the concrete model stays swappable.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client turns a structural file summary into a metadata suggestion.
type Client struct {
	generator Generator
	logger    *zap.Logger
}

func NewClient(generator Generator, logger *zap.Logger) *Client {
	return &Client{generator: generator, logger: logger}
}

// Suggest builds a prompt from the sample rows, calls the model and parses the
// response. It never returns an error: a missing generator, a timeout, a model
// failure or unparseable output all resolve to the zero-value suggestion, which
// callers must treat as "suggestion unavailable".
func (c *Client) Suggest(ctx context.Context, sampleRows []map[string]any, columnNames []string, language string) entity.MetadataFields {
	if c.generator == nil {
		c.logger.Warn("suggestion generator not configured, returning empty suggestion")
		return entity.MetadataFields{Tags: []string{}}
	}

	prompt := BuildPrompt(sampleRows, columnNames, language)

	response, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("metadata suggestion failed, returning empty suggestion", zap.Error(err))
		return entity.MetadataFields{Tags: []string{}}
	}

	return ParseResponse(response)
}

// OpenAIGenerator calls an OpenAI-compatible chat completions endpoint.
type OpenAIGenerator struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

func NewOpenAIGenerator(apiKey, endpoint, model string) *OpenAIGenerator {
	if endpoint == "" {
		endpoint = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		apiKey:   apiKey,
		endpoint: endpoint,
		model:    model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("generative AI API key not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:     g.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: 1500,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/chat/completions", g.endpoint), bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model API")
	}

	return parsed.Choices[0].Message.Content, nil
}
