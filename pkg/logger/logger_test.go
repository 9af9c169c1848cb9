package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appConfig "github.com/ehub-platform/event-service/internal/config"
)

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  appConfig.LoggerConfig
	}{
		{
			name: "production json",
			cfg:  appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
		},
		{
			name: "development console",
			cfg:  appConfig.LoggerConfig{Level: "debug", Format: "console", Output: "stderr"},
		},
		{
			name: "unknown output falls back to stdout",
			cfg:  appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "somewhere"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestNewWithConfig_InvalidLevelFallsBack(t *testing.T) {
	logger, err := NewWithConfig(appConfig.LoggerConfig{Level: "loud", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
