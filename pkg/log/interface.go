// Package log wires the pipeline's logging: slog as the default backend
// (tint for consoles, Cloud Logging style JSON otherwise), zerolog for
// structured warnings, and an in-memory TestLogger for assertions.
//
// Library code logs through the Logger interface:
//
//	logger := log.GetLoggerWithName("linear_model").With(log.ModelNameKey, "LinearRegression")
//	logger.Debug("Fitting", log.SamplesKey, 4, log.FeaturesKey, 2)
package log

import (
	"context"
	"log/slog"
)

// Logger is the subset of *slog.Logger the pipeline depends on. Error
// treats a leading error argument as the "error" attribute.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	With(fields ...any) Logger
	Enabled(ctx context.Context, level Level) bool
}

// Level mirrors slog.Level so values convert directly.
type Level int

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

func (l Level) String() string { return slog.Level(l).String() }

// LoggerProvider lets tests swap the backend behind GetLogger.
type LoggerProvider interface {
	GetLogger() Logger
	GetLoggerWithName(name string) Logger
	SetLevel(level Level)
}
