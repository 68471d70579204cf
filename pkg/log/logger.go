package log

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/lmittmann/tint"
	"github.com/rs/zerolog"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Output formats accepted by SetupLogger.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// SetupLogger configures the default slog logger.
//
// "json" emits Cloud Logging compatible JSON lines, "text" emits colourised
// console lines through tint. Both are wrapped by ErrFmtHandler.
func SetupLogger(loglevel, format string, w io.Writer) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		ops := slog.HandlerOptions{
			AddSource: true,
			Level:     level,
			// Replace attributes to convert to CloudLogging format.
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				switch attr.Key {
				case slog.LevelKey:
					attr = slog.Attr{Key: "severity", Value: attr.Value}
				case slog.MessageKey:
					attr = slog.Attr{Key: "message", Value: attr.Value}
				case slog.SourceKey:
					attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
				}
				return attr
			},
		}
		handler = slog.NewJSONHandler(w, &ops)
	case FormatText:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		})
	default:
		return errors.Newf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (slog.Level, error) {
	switch level {
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Newf("invalid log level: %s", level)
	}
}

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// slogLogger adapts *slog.Logger to Logger.
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps a slog logger. A nil logger means slog.Default().
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{logger: l}
}

func (s *slogLogger) base() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.base().Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.base().Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.base().Warn(msg, fields...) }

func (s *slogLogger) Error(msg string, fields ...any) {
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			fields = append([]any{ErrAttr(err)}, fields[1:]...)
		}
	}
	s.base().Error(msg, fields...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: s.base().With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.base().Enabled(ctx, slog.Level(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider
)

// SetProvider replaces the provider behind GetLogger and GetLoggerWithName.
// Passing nil restores the slog-backed default.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if provider != nil {
		return provider.GetLogger()
	}
	return &slogLogger{}
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if provider != nil {
		return provider.GetLoggerWithName(name)
	}
	return (&slogLogger{}).With(ComponentKey, name)
}

// NewZerologWarnFunc returns a warning sink for errors.SetZerologWarnFunc.
// Warnings that implement zerolog.LogObjectMarshaler are attached as a
// structured "warning" object.
func NewZerologWarnFunc(w io.Writer) func(error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event = event.Object("warning", obj)
		}
		event.Msg(warning.Error())
	}
}
