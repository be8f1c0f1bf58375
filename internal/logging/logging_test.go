package logging_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/logging"
)

func TestNewLoggerWithPath_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "WARN", want: zerolog.WarnLevel},
		{name: "empty defaults to info", level: "", want: zerolog.InfoLevel},
		{name: "invalid defaults to info", level: "loud", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := logging.NewLoggerWithPath(logging.Config{Level: tt.level, Format: logging.FormatJSON})
			assert.Equal(t, tt.want, result.Logger.GetLevel())
			assert.False(t, result.UsingFile)
		})
	}
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pipewatch.log")

	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "info",
		Format: logging.FormatJSON,
		Output: logging.OutputFile,
		File:   path,
	})
	t.Cleanup(func() { _ = result.Close() })

	assert.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)
	assert.FileExists(t, path)
	require.NoError(t, result.Close())
	require.NoError(t, result.Close())
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputFile})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	t.Setenv("PIPEWATCH_TRACE_ID", "")
	generated := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = logging.ContextWithTraceID(ctx, "trace-123")
	assert.Equal(t, "trace-123", logging.GetOrGenerateTraceID(ctx))

	t.Setenv("PIPEWATCH_TRACE_ID", "from-env")
	assert.Equal(t, "from-env", logging.GetOrGenerateTraceID(context.Background()))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, logging.FromContext(context.Background()).GetLevel())

	logger := zerolog.Nop().Level(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())
	ctx = logging.ContextWithTraceID(ctx, "abc")
	assert.Equal(t, zerolog.InfoLevel, logging.FromContext(ctx).GetLevel())
}
