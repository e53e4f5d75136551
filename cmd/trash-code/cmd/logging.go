package cmd

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/whit3rabbit/trash-code/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Records go to stderr, or to a rotating file when logCfg.Filename is set.
// The level comes from logCfg.Level; verbose forces debug. The returned
// closer releases the log file.
func configureLogger(logCfg config.LogConfig, verbose bool, stderr io.Writer) io.Closer {
	logLevel := parseSlogLevel(logCfg.Level, slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	var (
		logWriter io.Writer = stderr
		closer    io.Closer = nopCloser{}
	)
	if strings.TrimSpace(logCfg.Filename) != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   logCfg.Filename,
			MaxSize:    logCfg.MaxSize,
			MaxBackups: logCfg.MaxBackups,
			MaxAge:     logCfg.MaxAge,
			Compress:   logCfg.Compress,
		}
		logWriter, closer = fileWriter, fileWriter
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     logLevel,
	})
	slog.SetDefault(slog.New(handler))
	return closer
}
