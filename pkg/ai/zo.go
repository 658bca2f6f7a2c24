package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const zoService = "Zo Ask API"

// ZoClient calls the Zo Ask endpoint
type ZoClient struct {
	client *resty.Client
	model  string
	retry  RetryPolicy
	logger *zap.Logger
}

type zoAskRequest struct {
	Input     string `json:"input"`
	ModelName string `json:"model_name"`
}

// NewZoClient creates a Zo client. The token is sent verbatim in the
// authorization header.
func NewZoClient(opts Options, logger *zap.Logger) *ZoClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("authorization", opts.Token)
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	return &ZoClient{
		client: client,
		model:  opts.Model,
		retry:  opts.Retry,
		logger: logger,
	}
}

// Provider names the backing service
func (z *ZoClient) Provider() string {
	return "zo"
}

// Ask sends prompt to Zo and returns the output text
func (z *ZoClient) Ask(ctx context.Context, prompt string) (string, error) {
	return withRetry(ctx, z.retry, z.logger, zoService, func(ctx context.Context) (string, error) {
		return z.ask(ctx, prompt)
	})
}

func (z *ZoClient) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := z.client.R().
		SetContext(ctx).
		SetBody(zoAskRequest{Input: prompt, ModelName: z.model}).
		Post("/zo/ask")
	if err != nil {
		return "", fmt.Errorf("zo ask request failed: %w", err)
	}

	if resp.IsError() {
		return "", &APIError{
			Service:    zoService,
			StatusCode: resp.StatusCode(),
			Body:       truncateBody(resp.Body(), 500),
		}
	}

	output := gjson.GetBytes(resp.Body(), "output")
	if !output.Exists() || strings.TrimSpace(output.String()) == "" {
		return "", ErrEmptyOutput
	}
	return output.String(), nil
}
