package cmd

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLogger(t *testing.T) {
	logger := buildLogger("debug", "text")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = buildLogger("error", "json")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))

	// unknown level falls back to info
	logger = buildLogger("trace", "text")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}
