// Package log provides structured logging for path-tracking.
// It wraps a sugared zap logger with package-level helpers.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// Init initializes the global logger with the specified level.
// Valid levels: "debug", "info", "warn", "error"
func Init(level string) {
	once.Do(func() {
		lvl := zapcore.InfoLevel
		switch level {
		case "debug":
			lvl = zapcore.DebugLevel
		case "warn":
			lvl = zapcore.WarnLevel
		case "error":
			lvl = zapcore.ErrorLevel
		}

		// JSON in production, console in development
		var cfg zap.Config
		if os.Getenv("GO_ENV") == "production" {
			cfg = zap.NewProductionConfig()
		} else {
			cfg = zap.NewDevelopmentConfig()
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)

		l, err := cfg.Build()
		if err != nil {
			l = zap.NewNop()
		}
		logger = l.Sugar()
	})
}

// L returns the global logger instance.
func L() *zap.SugaredLogger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// SetLogger replaces the global logger. Passing nil mutes logging.
func SetLogger(l *zap.Logger) {
	once.Do(func() {})
	if l == nil {
		l = zap.NewNop()
	}
	logger = l.Sugar()
}

// Sync flushes buffered log entries.
func Sync() error {
	return L().Sync()
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debugw(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Infow(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warnw(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Errorw(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *zap.SugaredLogger {
	return L().With(args...)
}
