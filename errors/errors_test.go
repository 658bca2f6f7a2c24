package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := ErrMissingNotes()
	assert.Equal(t, "[PULSE_MISSING_NOTES] Missing notes", err.Error())

	cause := stdErrors.New("dial tcp: connection refused")
	wrapped := ErrStorageFailed("save run", cause)
	assert.Equal(t, "[INTEGRATION_STORAGE_FAILED] Storage operation failed: save run: dial tcp: connection refused", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestAppError_As(t *testing.T) {
	err := fmt.Errorf("pulse run: %w", ErrInvalidPasscode())

	var appErr AppError
	assert.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
	assert.Equal(t, ErrorCode_PULSE_INVALID_PASSCODE, appErr.Code)
}

func TestWithDetail_DoesNotShareMaps(t *testing.T) {
	base := ErrNotFound("run")
	a := base.WithDetail("run_id", "a")
	b := a.WithDetail("extra", "x")

	assert.Equal(t, map[string]string{"run_id": "a"}, a.Details)
	assert.Equal(t, map[string]string{"run_id": "a", "extra": "x"}, b.Details)
	assert.Nil(t, base.Details)
}

func TestErrExtractionParseFailed_TruncatesRaw(t *testing.T) {
	raw := strings.Repeat("é", 2500)
	err := ErrExtractionParseFailed(raw, stdErrors.New("invalid character"))

	assert.Len(t, []rune(err.Details["raw"]), 2000)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "INTERNAL", ErrorCode_INTERNAL.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(42).String())
}
