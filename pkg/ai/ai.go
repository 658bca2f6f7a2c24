package ai

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/runcontext"
)

// ErrEmptyOutput is returned when the model answered without any content
var ErrEmptyOutput = stdErrors.New("model returned empty output")

// Asker sends a single prompt to a language model and returns its text answer
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// APIError is a non-2xx answer from a model provider
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Service, e.StatusCode, e.Body)
}

// HTTPStatus exposes the upstream status for retry classification
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// RetryPolicy bounds the exponential backoff around a model call
type RetryPolicy struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// DefaultRetryPolicy mirrors the backoff used for upstream submissions
func DefaultRetryPolicy(maxElapsed time.Duration) RetryPolicy {
	return RetryPolicy{
		InitialInterval: 2 * time.Second,
		MaxInterval:     15 * time.Second,
		MaxElapsed:      maxElapsed,
	}
}

// Options configures a provider client
type Options struct {
	BaseURL string
	Token   string
	Model   string
	Timeout time.Duration
	Retry   RetryPolicy
}

// New builds the Asker for the configured provider. A missing credential is
// reported before any network call is made.
func New(cfg *config.Config, logger *zap.Logger) (Asker, error) {
	token := cfg.LLMToken()
	retry := DefaultRetryPolicy(cfg.LLM.MaxElapsed)

	switch cfg.LLM.Provider {
	case config.ProviderGroq:
		if token == "" {
			return nil, errors.ErrLLMNotConfigured(config.ProviderGroq,
				"Set GROQ_API_KEY in the environment or .env file.")
		}
		return NewGroqClient(Options{
			BaseURL: cfg.LLM.GroqBaseURL,
			Token:   token,
			Model:   cfg.LLM.GroqModel,
			Timeout: cfg.LLM.Timeout,
			Retry:   retry,
		}, logger), nil
	default:
		if token == "" {
			return nil, errors.ErrLLMNotConfigured(config.ProviderZo,
				"Create a Zo access token and save it as ZO_API_KEY in the environment or .env file.")
		}
		return NewZoClient(Options{
			BaseURL: cfg.LLM.ZoBaseURL,
			Token:   cfg.ZoAuthorization(),
			Model:   cfg.LLM.ZoModel,
			Timeout: cfg.LLM.Timeout,
			Retry:   retry,
		}, logger), nil
	}
}

// withRetry runs call with exponential backoff, retrying only failures that
// runcontext classifies as transient
func withRetry(ctx context.Context, policy RetryPolicy, logger *zap.Logger, service string, call func(context.Context) (string, error)) (string, error) {
	var (
		out     string
		attempt int
	)
	attemptCtx := ctx

	op := func() error {
		attemptCtx = runcontext.SetRetryAttempt(ctx, attempt)
		attempt++

		res, err := call(attemptCtx)
		if err == nil {
			out = res
			return nil
		}
		if !runcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = policy.InitialInterval
	bo.MaxInterval = policy.MaxInterval
	bo.MaxElapsedTime = policy.MaxElapsed

	notify := func(err error, wait time.Duration) {
		if logger != nil {
			meta := runcontext.GetRunMetadata(attemptCtx)
			fields := []zap.Field{
				zap.String("service", service),
				zap.String("run_id", meta.RunID),
				zap.String("source", meta.Source),
				zap.Int("attempt", meta.RetryAttempt+1),
				zap.Duration("wait", wait),
				zap.Error(err),
			}
			if !meta.StartTime.IsZero() {
				fields = append(fields, zap.Duration("run_elapsed", time.Since(meta.StartTime)))
			}
			logger.Warn("⚠️ Model call failed, retrying", fields...)
		}
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(bo, ctx), notify); err != nil {
		return "", err
	}
	return out, nil
}

func truncateBody(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
