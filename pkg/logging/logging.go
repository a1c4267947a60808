// Package logging configures colored structured logging with tint and adapts
// it to the calculation engine's printf-style Logger.
//
// Usage:
//
//	logging.Setup(os.Stderr)                          // level from LOG_LEVEL
//	logging.SetupWithLevel(os.Stderr, slog.LevelDebug)
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: warn)
//	NO_COLOR:  any value disables colors
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on w at the level named by LOG_LEVEL.
func Setup(w io.Writer) *slog.Logger {
	return SetupWithLevel(w, LevelFromEnv())
}

// SetupWithLevel configures colored logging on w at the given level and
// installs it as the slog default.
func SetupWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(NewHandler(w, level, os.Getenv("NO_COLOR") != ""))
	slog.SetDefault(logger)
	return logger
}

// NewHandler returns a tint handler writing to w.
func NewHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

// LevelFromEnv reads LOG_LEVEL. The default is warn so that report output is
// not interleaved with progress messages.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"), slog.LevelWarn)
}

// ParseLevel maps debug/info/warn/error to a slog level, falling back to def.
func ParseLevel(s string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}

// CalcLogger satisfies calculation.Logger on top of a slog.Logger.
type CalcLogger struct {
	L *slog.Logger
}

// NewCalcLogger wraps l, or the slog default when l is nil.
func NewCalcLogger(l *slog.Logger) CalcLogger {
	if l == nil {
		l = slog.Default()
	}
	return CalcLogger{L: l}
}

func (c CalcLogger) Debugf(format string, args ...any) { c.log(slog.LevelDebug, format, args) }
func (c CalcLogger) Infof(format string, args ...any)  { c.log(slog.LevelInfo, format, args) }
func (c CalcLogger) Warnf(format string, args ...any)  { c.log(slog.LevelWarn, format, args) }
func (c CalcLogger) Errorf(format string, args ...any) { c.log(slog.LevelError, format, args) }

func (c CalcLogger) log(level slog.Level, format string, args []any) {
	ctx := context.Background()
	if !c.L.Enabled(ctx, level) {
		return
	}
	c.L.Log(ctx, level, fmt.Sprintf(format, args...), "component", "engine")
}
