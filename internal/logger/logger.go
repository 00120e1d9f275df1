package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the process-wide logger.
// "development" gets a readable text handler at debug level, anything else
// gets JSON at info level.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

// InitWithWriter installs the default logger writing to w. Development uses
// the text handler at debug level, every other env JSON at info level.
func InitWithWriter(env string, w io.Writer) {
	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

// GetLogger returns the process logger, initialising a development logger
// when Init has not been called yet.
func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError returns a logger carrying err under the "error" key.
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// EventLog records the outcome of publishing a domain event.
func EventLog(routingKey string, err error) {
	if err != nil {
		GetLogger().Error("event publish failed", "routing_key", routingKey, "error", err.Error())
		return
	}
	GetLogger().Debug("event published", "routing_key", routingKey)
}
