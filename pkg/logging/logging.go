// Package logging provides structured logging for the DMS MCP server.
//
// It is a thin layer over the standard slog package: every entry carries a
// subsystem tag so log output from the gateway, the domain managers, and the
// tool layer can be told apart. Output goes to a single writer (stderr by
// default, since stdout belongs to the stdio MCP transport). When structured
// mode is enabled entries are emitted as JSON, otherwise as text.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel defines the severity of a log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy fmt.Stringer.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a level name (case-insensitive) to a LogLevel.
// WARNING and WARN are accepted as synonyms.
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init configures the package logger. Call once at startup, before any
// goroutine logs. structured selects the JSON handler.
func Init(level LogLevel, structured bool, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.slogLevel()}
	var handler slog.Handler
	if structured {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// Debug logs a debug message for the given subsystem.
func Debug(subsystem, format string, args ...any) {
	logger.Debug(fmt.Sprintf(format, args...), "subsystem", subsystem)
}

// Info logs an informational message for the given subsystem.
func Info(subsystem, format string, args ...any) {
	logger.Info(fmt.Sprintf(format, args...), "subsystem", subsystem)
}

// Warn logs a warning for the given subsystem.
func Warn(subsystem, format string, args ...any) {
	logger.Warn(fmt.Sprintf(format, args...), "subsystem", subsystem)
}

// Error logs an error for the given subsystem. err may be nil.
func Error(subsystem string, err error, format string, args ...any) {
	if err != nil {
		logger.Error(fmt.Sprintf(format, args...), "subsystem", subsystem, "error", err)
		return
	}
	logger.Error(fmt.Sprintf(format, args...), "subsystem", subsystem)
}
