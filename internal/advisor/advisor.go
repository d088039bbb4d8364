// Package advisor answers trader questions through an OpenAI-compatible
// chat completion endpoint, degrading to a canned reply when the upstream
// is not configured or unreachable.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// FallbackReply is served whenever the upstream cannot produce an answer.
const FallbackReply = "Je suis TradeSense AI, j'analyse actuellement les graphiques pour vous. Réessayez dans un instant."

const systemPrompt = "Tu es TradeSense AI, un assistant de trading francophone. " +
	"Réponds de façon concise et prudente, sans jamais garantir de gains."

// Client calls a chat completion endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient builds an advisor client. An empty baseURL uses the OpenAI
// endpoint.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends one user message and returns the model's reply.
func (c *Client) Complete(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor request: status %d", resp.StatusCode)
	}

	var res struct {
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("advisor decode: %w", err)
	}
	if len(res.Choices) == 0 || res.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("advisor: empty completion")
	}
	return res.Choices[0].Message.Content, nil
}

// Service wraps the client with the fallback behavior.
type Service struct {
	client *Client
	logger *slog.Logger
}

// NewService builds the advisor service. client may be unconfigured.
func NewService(client *Client, logger *slog.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Reply answers a trader message. Any upstream problem yields the fixed
// fallback reply instead of an error.
func (s *Service) Reply(ctx context.Context, message string) string {
	if !s.client.Configured() {
		return FallbackReply
	}
	reply, err := s.client.Complete(ctx, message)
	if err != nil {
		s.logger.Warn("advisor completion failed", "error", err)
		return FallbackReply
	}
	return reply
}
