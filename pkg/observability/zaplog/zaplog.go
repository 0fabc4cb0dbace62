// Package zaplog implements observability.Logger on top of go.uber.org/zap.
package zaplog

import (
	"context"
	"fmt"

	"github.com/JailtonJunior94/eventmanager/pkg/observability"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the zap preset used by New.
type Config struct {
	Level       observability.LogLevel
	Format      observability.LogFormat
	ServiceName string
}

// DefaultConfig logs JSON at info level.
func DefaultConfig(serviceName string) Config {
	return Config{
		Level:       observability.LogLevelInfo,
		Format:      observability.LogFormatJSON,
		ServiceName: serviceName,
	}
}

// Logger adapts a *zap.Logger to observability.Logger.
type Logger struct {
	zl *zap.Logger
}

// New builds a zap logger from config. JSON output uses zap's production
// encoder, text output uses the development console encoder.
func New(config Config) (*Logger, error) {
	var zc zap.Config
	switch config.Format {
	case observability.LogFormatText:
		zc = zap.NewDevelopmentConfig()
	case observability.LogFormatJSON, "":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q", config.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(Level(config.Level))

	zl, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}
	if config.ServiceName != "" {
		zl = zl.With(zap.String("service", config.ServiceName))
	}
	return Wrap(zl), nil
}

// Wrap adapts an existing zap logger.
func Wrap(zl *zap.Logger) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{zl: zl}
}

// Zap returns the underlying zap logger.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) Debug(_ context.Context, msg string, fields ...observability.Field) {
	l.zl.Debug(msg, toZapFields(fields)...)
}

func (l *Logger) Info(_ context.Context, msg string, fields ...observability.Field) {
	l.zl.Info(msg, toZapFields(fields)...)
}

func (l *Logger) Warn(_ context.Context, msg string, fields ...observability.Field) {
	l.zl.Warn(msg, toZapFields(fields)...)
}

func (l *Logger) Error(_ context.Context, msg string, fields ...observability.Field) {
	l.zl.Error(msg, toZapFields(fields)...)
}

func (l *Logger) With(fields ...observability.Field) observability.Logger {
	return &Logger{zl: l.zl.With(toZapFields(fields)...)}
}

// Level maps an observability level to a zap level; unknown levels map to info.
func Level(level observability.LogLevel) zapcore.Level {
	switch level {
	case observability.LogLevelDebug:
		return zapcore.DebugLevel
	case observability.LogLevelWarn:
		return zapcore.WarnLevel
	case observability.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []observability.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			out = append(out, zap.String(f.Key, v))
		case []string:
			out = append(out, zap.Strings(f.Key, v))
		case int:
			out = append(out, zap.Int(f.Key, v))
		case int64:
			out = append(out, zap.Int64(f.Key, v))
		case float64:
			out = append(out, zap.Float64(f.Key, v))
		case bool:
			out = append(out, zap.Bool(f.Key, v))
		case error:
			out = append(out, zap.NamedError(f.Key, v))
		default:
			out = append(out, zap.Any(f.Key, v))
		}
	}
	return out
}
