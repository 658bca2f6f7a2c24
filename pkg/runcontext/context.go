package runcontext

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

type KeyContext string

var (
	keyRunID        KeyContext = "run_id"
	keyRunSource    KeyContext = "run_source"
	keyRetryAttempt KeyContext = "retry_attempt"
	keyRunStartTime KeyContext = "run_start_time"
)

// Run sources
const (
	SourceHTTP = "http"
	SourceCLI  = "cli"
)

// RunMetadata holds metadata for one pulse pipeline execution
type RunMetadata struct {
	RunID        string
	Source       string
	RetryAttempt int
	StartTime    time.Time
}

// RunBegin derives a context for a pipeline execution carrying run metadata.
// A non-positive timeout leaves the parent deadline untouched.
func RunBegin(parentCtx context.Context, runID, source string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := parentCtx, context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parentCtx, timeout)
	}

	ctx = context.WithValue(ctx, keyRunID, runID)
	ctx = context.WithValue(ctx, keyRunSource, source)
	ctx = context.WithValue(ctx, keyRetryAttempt, 0)
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())

	return ctx, cancel
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(keyRunID).(string)
	return runID, ok
}

// GetRunSource extracts the entry point that started the run
func GetRunSource(ctx context.Context) (string, bool) {
	source, ok := ctx.Value(keyRunSource).(string)
	return source, ok
}

// GetRetryAttempt extracts current retry attempt from context
func GetRetryAttempt(ctx context.Context) int {
	attempt, ok := ctx.Value(keyRetryAttempt).(int)
	if !ok {
		return 0
	}
	return attempt
}

// SetRetryAttempt updates retry attempt in context
func SetRetryAttempt(ctx context.Context, attempt int) context.Context {
	return context.WithValue(ctx, keyRetryAttempt, attempt)
}

// GetRunStartTime extracts run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyRunStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	source, _ := GetRunSource(ctx)
	startTime, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		RunID:        runID,
		Source:       source,
		RetryAttempt: GetRetryAttempt(ctx),
		StartTime:    startTime,
	}
}

// statusCoder is implemented by errors that carry an upstream HTTP status
type statusCoder interface {
	HTTPStatus() int
}

// IsRetryableError checks if an error should trigger a retry
// Retryable errors include: network errors, timeouts, rate limits, 5xx responses
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Caller gave up; retrying cannot help
	if errors.Is(err, context.Canceled) {
		return false
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		status := sc.HTTPStatus()
		return status == 429 || status >= 500
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())

	// Timeouts
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "client.timeout exceeded") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	// API rate limiting
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") {
		return true
	}

	// Server errors (5xx)
	if strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "service unavailable") ||
		strings.Contains(errStr, "bad gateway") {
		return true
	}

	// Temporary failures
	if strings.Contains(errStr, "temporary failure") ||
		strings.Contains(errStr, "try again") {
		return true
	}

	return false
}
