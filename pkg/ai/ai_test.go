package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	appErrors "github.com/johnquangdev/signal-pulse/errors"
	"github.com/johnquangdev/signal-pulse/pkg/config"
	"github.com/johnquangdev/signal-pulse/pkg/runcontext"
)

var fastRetry = RetryPolicy{
	InitialInterval: time.Millisecond,
	MaxInterval:     5 * time.Millisecond,
	MaxElapsed:      time.Second,
}

func TestZoClient_Ask(t *testing.T) {
	t.Run("Should send the prompt and return the output", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/zo/ask", r.URL.Path)
			assert.Equal(t, "zo-token", r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "extract this", body["input"])
			assert.Equal(t, "openai:gpt-5.2-2025-12-11", body["model_name"])

			_ = json.NewEncoder(w).Encode(map[string]string{"output": "{\"action_items\": []}"})
		}))
		defer ts.Close()

		client := NewZoClient(Options{BaseURL: ts.URL + "/", Token: "zo-token", Model: "openai:gpt-5.2-2025-12-11", Retry: fastRetry}, nil)
		out, err := client.Ask(context.Background(), "extract this")

		require.NoError(t, err)
		assert.Equal(t, `{"action_items": []}`, out)
		assert.Equal(t, "zo", client.Provider())
	})

	t.Run("Should report status and truncated body on client errors", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(strings.Repeat("x", 800)))
		}))
		defer ts.Close()

		client := NewZoClient(Options{BaseURL: ts.URL, Token: "bad", Retry: fastRetry}, nil)
		_, err := client.Ask(context.Background(), "p")

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		assert.Len(t, apiErr.Body, 500)
		assert.True(t, strings.HasPrefix(err.Error(), "Zo Ask API error 401: "))
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("Should retry server errors until success", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"output": "report"}`))
		}))
		defer ts.Close()

		client := NewZoClient(Options{BaseURL: ts.URL, Token: "t", Retry: fastRetry}, nil)
		out, err := client.Ask(context.Background(), "p")

		require.NoError(t, err)
		assert.Equal(t, "report", out)
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})

	t.Run("Should log run metadata when retrying", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"output": "ok"}`))
		}))
		defer ts.Close()

		core, logs := observer.New(zap.WarnLevel)
		client := NewZoClient(Options{BaseURL: ts.URL, Token: "t", Retry: fastRetry}, zap.New(core))
		ctx, cancel := runcontext.RunBegin(context.Background(), "2026-03-05_151507_0a1b2c3d", runcontext.SourceCLI, 0)
		defer cancel()

		_, err := client.Ask(ctx, "p")
		require.NoError(t, err)

		retries := logs.All()
		require.Len(t, retries, 1)
		fields := retries[0].ContextMap()
		assert.Equal(t, "2026-03-05_151507_0a1b2c3d", fields["run_id"])
		assert.Equal(t, runcontext.SourceCLI, fields["source"])
		assert.EqualValues(t, 1, fields["attempt"])
		assert.Contains(t, fields, "run_elapsed")
	})

	t.Run("Should reject an empty output", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"output": "  "}`))
		}))
		defer ts.Close()

		client := NewZoClient(Options{BaseURL: ts.URL, Token: "t", Retry: fastRetry}, nil)
		_, err := client.Ask(context.Background(), "p")

		assert.ErrorIs(t, err, ErrEmptyOutput)
	})
}

func TestGroqClient_Ask(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "score me", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "done"}}]}`))
	}))
	defer ts.Close()

	client := NewGroqClient(Options{BaseURL: ts.URL, Token: "gsk", Model: "llama", Retry: fastRetry}, nil)
	out, err := client.Ask(context.Background(), "score me")

	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestNew(t *testing.T) {
	t.Run("Should require a Zo token", func(t *testing.T) {
		cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderZo}}

		_, err := New(cfg, nil)

		var appErr appErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, appErrors.ErrorCode_AI_NOT_CONFIGURED, appErr.Code)
		assert.Contains(t, appErr.Details["setup"], "ZO_API_KEY")
	})

	t.Run("Should fall back to the identity token", func(t *testing.T) {
		cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderZo, ZoIdentityToken: "id"}}

		asker, err := New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, "zo", asker.Provider())
	})

	t.Run("Should build a Groq client", func(t *testing.T) {
		cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderGroq, GroqAPIKey: "gsk"}}

		asker, err := New(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &GroqClient{}, asker)
	})
}
