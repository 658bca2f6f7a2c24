package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const groqService = "Groq API"

// GroqClient is a minimal client for Groq chat completions
type GroqClient struct {
	client *resty.Client
	model  string
	retry  RetryPolicy
	logger *zap.Logger
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// NewGroqClient creates a Groq client using the provided options
func NewGroqClient(opts Options, logger *zap.Logger) *GroqClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(opts.Token)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &GroqClient{
		client: client,
		model:  opts.Model,
		retry:  opts.Retry,
		logger: logger,
	}
}

// Provider names the backing service
func (g *GroqClient) Provider() string {
	return "groq"
}

// Ask sends prompt as a single user message and returns the assistant content
func (g *GroqClient) Ask(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, g.retry, g.logger, groqService, func(ctx context.Context) (string, error) {
		return g.ask(ctx, prompt)
	})
}

func (g *GroqClient) ask(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   8000,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		Post("/openai/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}

	if resp.IsError() {
		return "", &APIError{
			Service:    groqService,
			StatusCode: resp.StatusCode(),
			Body:       truncateBody(resp.Body(), 500),
		}
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content")
	if !content.Exists() || strings.TrimSpace(content.String()) == "" {
		return "", ErrEmptyOutput
	}
	return content.String(), nil
}
