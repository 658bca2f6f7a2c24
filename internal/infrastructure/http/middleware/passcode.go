package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/signal-pulse/errors"
)

// PasscodeHeader carries the shared passcode on requests without a JSON body
const PasscodeHeader = "X-Signal-Pulse-Passcode"

// PasscodeGuard checks the shared passcode protecting the pulse API. An empty
// passcode disables the check.
type PasscodeGuard struct {
	digest  [sha256.Size]byte
	enabled bool
	length  int
}

// NewPasscodeGuard creates a guard for passcode
func NewPasscodeGuard(passcode string) *PasscodeGuard {
	return &PasscodeGuard{
		digest:  sha256.Sum256([]byte(passcode)),
		enabled: passcode != "",
		length:  len(strings.TrimSpace(passcode)),
	}
}

// Enabled reports whether a passcode is configured
func (g *PasscodeGuard) Enabled() bool {
	return g != nil && g.enabled
}

// Length is the trimmed passcode length, reported by the health endpoint
func (g *PasscodeGuard) Length() int {
	if g == nil {
		return 0
	}
	return g.length
}

// Verify compares candidate with the configured passcode in constant time
func (g *PasscodeGuard) Verify(candidate string) bool {
	if !g.Enabled() {
		return true
	}
	sum := sha256.Sum256([]byte(candidate))
	return subtle.ConstantTimeCompare(sum[:], g.digest[:]) == 1
}

// RequireHeader rejects requests whose passcode header does not match
func (g *PasscodeGuard) RequireHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.Verify(c.Request().Header.Get(PasscodeHeader)) {
				return errors.ErrInvalidPasscode()
			}
			return next(c)
		}
	}
}
