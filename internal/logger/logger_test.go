package logger

import (
	"testing"

	"wallet-wrapped/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	app := config.AppConfig{Name: "wallet-wrapped", Version: "test"}

	l, err := NewLogger(app, config.LoggerConfig{Level: "debug", Encoding: "console", Output: "stderr"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = NewLogger(app, config.LoggerConfig{Level: "loud", Encoding: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))

	_, err = NewLogger(app, config.LoggerConfig{Level: "info", Output: "/var/log/app.log"})
	require.Error(t, err)
}
