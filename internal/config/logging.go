package config

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/pipewatch/internal/logging"
)

// Logger is the package-wide logger used before the CLI has configured its own.
//
//nolint:gochecknoglobals // Shared by config loading, which runs before any logger is injected.
var Logger zerolog.Logger

//nolint:gochecknoglobals // Tracks the open log file so it can be closed on re-init.
var logFileHandle *os.File

//nolint:gochecknoglobals // Guards Logger and logFileHandle.
var logMu sync.RWMutex

// InitLogger sets Logger to the given level writing to stderr and, when logToFile is
// true, also to the configured log file (or pipewatch.log in the config directory).
// An unknown level falls back to info.
func InitLogger(level string, logToFile bool) error {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{consoleWriter()}

	closeLogFileLocked()

	if logToFile {
		logPath, pathErr := defaultLogPath()
		if pathErr != nil {
			return pathErr
		}
		if mkErr := os.MkdirAll(filepath.Dir(logPath), 0700); mkErr != nil {
			return mkErr
		}

		logFile, fileErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if fileErr != nil {
			return fileErr
		}
		logFileHandle = logFile
		writers = append(writers, logFile)
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return nil
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

// defaultLogPath reads the file from the environment rather than the global config,
// since InitLogger may run while the global config is still loading.
func defaultLogPath() (string, error) {
	if path := os.Getenv("PIPEWATCH_LOG_FILE"); path != "" {
		return path, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "pipewatch.log"), nil
}

// SetLogLevel changes the level of Logger. An unknown level falls back to info.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// CloseLogFile closes the log file opened by InitLogger, if any.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logFileHandle == nil {
		return
	}
	_ = logFileHandle.Close()
	logFileHandle = nil

	Logger = zerolog.New(consoleWriter()).
		Level(Logger.GetLevel()).
		With().
		Timestamp().
		Logger()
}

// GetLogger returns a copy of Logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

//nolint:gochecknoinits // Logger must be usable before configuration is loaded.
func init() {
	_ = InitLogger("info", false)
}

// ToLoggingConfig converts the configuration section into a logging.Config.
// A non-empty File selects file output, otherwise logs go to stderr.
func (lc *LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global configuration's logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
