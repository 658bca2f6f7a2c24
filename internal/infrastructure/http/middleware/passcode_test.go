package middleware

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/signal-pulse/errors"
)

func TestPasscodeGuard_Verify(t *testing.T) {
	t.Run("Should allow everything when disabled", func(t *testing.T) {
		g := NewPasscodeGuard("")
		assert.False(t, g.Enabled())
		assert.True(t, g.Verify(""))
		assert.True(t, g.Verify("anything"))
	})

	t.Run("Should require an exact match when enabled", func(t *testing.T) {
		g := NewPasscodeGuard("s3cret")
		assert.True(t, g.Enabled())
		assert.Equal(t, 6, g.Length())
		assert.True(t, g.Verify("s3cret"))
		assert.False(t, g.Verify("S3cret"))
		assert.False(t, g.Verify(""))
	})

	t.Run("Should report the trimmed length but compare the raw value", func(t *testing.T) {
		g := NewPasscodeGuard(" s3cret\n")
		assert.True(t, g.Enabled())
		assert.Equal(t, 6, g.Length())
		assert.True(t, g.Verify(" s3cret\n"))
		assert.False(t, g.Verify("s3cret"))

		blank := NewPasscodeGuard("   ")
		assert.True(t, blank.Enabled())
		assert.Zero(t, blank.Length())
	})

	t.Run("Should be safe on a nil guard", func(t *testing.T) {
		var g *PasscodeGuard
		assert.True(t, g.Verify("x"))
		assert.Zero(t, g.Length())
	})
}

func TestPasscodeGuard_RequireHeader(t *testing.T) {
	g := NewPasscodeGuard("s3cret")
	handler := g.RequireHeader()(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e := echo.New()

	t.Run("Should pass with the right header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/signal-pulse/history", nil)
		req.Header.Set(PasscodeHeader, "s3cret")
		rec := httptest.NewRecorder()

		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("Should reject a wrong header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/signal-pulse/history", nil)
		req.Header.Set(PasscodeHeader, "guess")

		err := handler(e.NewContext(req, httptest.NewRecorder()))

		var appErr errors.AppError
		require.True(t, stdErrors.As(err, &appErr))
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
	})
}
