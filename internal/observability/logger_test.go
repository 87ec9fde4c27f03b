package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoggerConfig struct {
	level  string
	format string
}

func (c fakeLoggerConfig) LoggingLevel() string  { return c.level }
func (c fakeLoggerConfig) LoggingFormat() string { return c.format }

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"verbose", false, true}, // unknown falls back to info
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(fakeLoggerConfig{level: tt.level, format: "json"})
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.debugOn, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.warnOn, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	// Both formats construct without error; handler choice is not observable
	// beyond construction, so this pins the API contract only.
	assert.NotNil(t, NewLogger(fakeLoggerConfig{level: "info", format: "text"}))
	assert.NotNil(t, NewLogger(fakeLoggerConfig{level: "info", format: "json"}))
}
