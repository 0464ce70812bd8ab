package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpshade/remindful/internal/config"
)

func TestSetup(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
	}{
		{name: "debug level", logLevel: "debug"},
		{name: "info level", logLevel: "info"},
		{name: "warn level", logLevel: "warn"},
		{name: "error level", logLevel: "error"},
		{name: "mixed case accepted", logLevel: "INFO"},
		{name: "invalid level falls back to info", logLevel: "verbose"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestContextLogger(t *testing.T) {
	t.Parallel()
	buf, log := NewTestLogger(t, nil)

	ctx := WithLogger(context.Background(), log)
	FromContext(ctx).Info("from context", slog.String("key", "value"))

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "from context", entries[0]["msg"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()
	_, fallback := NewTestLogger(t, nil)

	assert.Equal(t, fallback, FromContextOrDefault(context.Background(), fallback))

	_, inCtx := NewTestLogger(t, nil)
	ctx := WithLogger(context.Background(), inCtx)
	assert.Equal(t, inCtx, FromContextOrDefault(ctx, fallback))
}
