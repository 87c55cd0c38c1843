package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-gin/internal/apperr"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Completer produces the assistant's reply for a system and user prompt.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type ClientConfig struct {
	URL         string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client calls a chat-completions endpoint.
type Client struct {
	httpClient *resty.Client
	cfg        ClientConfig
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	return &Client{httpClient: client, cfg: cfg, logger: logger}
}

// Complete returns the first choice's content. Every failure comes back as
// an upstream error.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	request := completionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var response completionResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post(c.cfg.URL)
	if err != nil {
		c.logger.Error("LLM API call failed", zap.Error(err))
		return "", apperr.Upstream(fmt.Errorf("call LLM API: %w", err))
	}
	if resp.IsError() {
		c.logger.Error("LLM API returned error", zap.Int("status_code", resp.StatusCode()))
		return "", apperr.Upstream(fmt.Errorf("LLM API status %d", resp.StatusCode()))
	}
	if len(response.Choices) == 0 {
		return "", apperr.Upstream(errors.New("LLM API returned no choices"))
	}
	content := strings.TrimSpace(response.Choices[0].Message.Content)
	if content == "" {
		return "", apperr.Upstream(errors.New("LLM API returned an empty reply"))
	}
	return content, nil
}
