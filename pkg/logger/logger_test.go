package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("Should honor the configured level", func(t *testing.T) {
		log, err := New("production", "warn")
		require.NoError(t, err)

		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("Should build a development logger", func(t *testing.T) {
		log, err := New("development", "debug")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("Should reject an unknown level", func(t *testing.T) {
		_, err := New("development", "loud")
		assert.Error(t, err)
	})
}

func TestNewCLI(t *testing.T) {
	assert.False(t, NewCLI(false).Core().Enabled(zapcore.InfoLevel))
	assert.True(t, NewCLI(true).Core().Enabled(zapcore.DebugLevel))
}
