// Package logger holds the process-wide zap logger.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const loggerKey = contextKey("logger")

var global atomic.Pointer[zap.SugaredLogger]

// ParseLevel maps a config level name to a zap level. Unknown names map to
// info.
func ParseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	}
	return zapcore.InfoLevel
}

// Init initializes the global logger based on configuration.
// Output goes to stderr unless logging to a file is enabled, in which case
// the file is rotated by lumberjack.
func Init(cfg LoggingConfig) *zap.SugaredLogger {
	var w io.Writer = os.Stderr
	if cfg.Enabled && cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err == nil {
			w = &lumberjack.Logger{
				Filename:   cfg.Path,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
				Compress:   cfg.Compress,
			}
		}
	}
	l := New(w, ParseLevel(cfg.Level))
	global.Store(l)
	l.Debugw("logging initialized", "level", cfg.Level, "path", cfg.Path)
	return l
}

// New builds a console logger writing to w.
func New(w io.Writer, level zapcore.Level) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()).Sugar()
}

// Sync flushes any buffered log entries.
func Sync() error {
	if l := global.Load(); l != nil {
		return l.Sync()
	}
	return nil
}

// Get returns the logger from ctx, the global logger, or a no-op logger if
// Init was never called.
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
			return l
		}
	}
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop().Sugar()
}

// WithContext adds logger to context.
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}
