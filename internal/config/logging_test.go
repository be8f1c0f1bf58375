package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pipewatch/internal/config"
)

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, config.InitLogger("info", false))
	t.Cleanup(func() { _ = config.InitLogger("info", false) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "bogus", want: zerolog.InfoLevel},
		{level: "", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			config.SetLogLevel(tt.level)
			assert.Equal(t, tt.want, config.GetLogger().GetLevel())
		})
	}
}

func TestCloseLogFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "pipewatch.log")
	t.Setenv("PIPEWATCH_LOG_FILE", logPath)
	t.Cleanup(func() { _ = config.InitLogger("info", false) })

	require.NoError(t, config.InitLogger("warn", true))
	config.Logger.Warn().Msg("before close")

	config.CloseLogFile()
	config.CloseLogFile()

	logger := config.GetLogger()
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	logger.Warn().Msg("after close")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "after close")
}
