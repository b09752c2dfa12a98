// Package log provides the structured logger used across veil's internal packages.
//
// Veil's core is a library, not a service, so logging is deliberately quiet: the default
// logger discards everything below warning level, and no protocol ever logs secret material.
// ConfigureDefaultLogger swaps the process-wide default returned by later DefaultLogger calls, and
// ToContext/FromContextOrDefault carry a Logger through a context.Context. Veil's internal packages
// take no context and keep the logger they obtained from DefaultLogger when they were loaded, so
// neither mechanism changes their output.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout veil's internal packages.
type Logger interface {
	Debug(keyvals ...interface{})
	Info(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	Debugw(msg string, keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
}

type log struct {
	*zap.SugaredLogger
}

func (l *log) With(args ...interface{}) Logger {
	return &log{l.SugaredLogger.With(args...)}
}

func (l *log) Named(s string) Logger {
	return &log{l.SugaredLogger.Named(s)}
}

const (
	DebugLevel = int(zapcore.DebugLevel)
	InfoLevel  = int(zapcore.InfoLevel)
	WarnLevel  = int(zapcore.WarnLevel)
	ErrorLevel = int(zapcore.ErrorLevel)
)

// DefaultLevel is the level the package-default logger is configured with. A library has no
// business being chatty, so this defaults to warnings and above.
var DefaultLevel = WarnLevel

var isDefaultLoggerSet sync.Once

// ConfigureDefaultLogger replaces the process-wide default logger.
func ConfigureDefaultLogger(output zapcore.WriteSyncer, level int, jsonFormat bool) {
	zap.ReplaceGlobals(newZapLogger(output, encoderFor(jsonFormat), level))
}

// DefaultLogger returns the package-default logger, initializing it on first use.
func DefaultLogger() Logger {
	isDefaultLoggerSet.Do(func() {
		zap.ReplaceGlobals(newZapLogger(nil, encoderFor(true), DefaultLevel))
	})
	return &log{zap.S()}
}

// New returns a Logger writing to output at the given level.
func New(output zapcore.WriteSyncer, level int, isJSON bool) Logger {
	return &log{newZapLogger(output, encoderFor(isJSON), level).Sugar()}
}

func newZapLogger(output zapcore.WriteSyncer, encoder zapcore.Encoder, level int) *zap.Logger {
	if output == nil {
		output = zapcore.AddSync(os.Stderr)
	}
	core := zapcore.NewCore(encoder, output, zapcore.Level(level))
	return zap.New(core)
}

func encoderFor(isJSON bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if isJSON {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

type ctxKey string

const loggerCtxKey ctxKey = "veilLogger"

// ToContext attaches a Logger to a context.
func ToContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, l)
}

// FromContextOrDefault returns the Logger attached to ctx, or the package default.
func FromContextOrDefault(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerCtxKey).(Logger); ok {
		return l
	}
	return DefaultLogger()
}
