// Package logger wraps zerolog behind the small structured-logging surface
// the marketplace services use: leveled messages with ad-hoc field maps, plus
// request-scoped child loggers.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the application logger. The zero value is not usable; construct
// one with New or NewWithWriter.
type Logger struct {
	zl zerolog.Logger
}

// New builds a logger writing to stdout. Development gets colored console
// output at debug level; every other environment gets JSON at info level,
// which is what the log shipper ingests.
func New(env string) *Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit sink, so tests can capture output.
func NewWithWriter(env string, w io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	out := w
	if env == "development" {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return &Logger{
		zl: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	withFields(l.zl.Debug(), fields).Msg(msg)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	withFields(l.zl.Info(), fields).Msg(msg)
}

// Warn logs a warning with optional fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	withFields(l.zl.Warn(), fields).Msg(msg)
}

// Error logs an error with the failure attached and optional fields.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	withFields(l.zl.Error().Err(err), fields).Msg(msg)
}

// Fatal logs the error and exits the process. Only main uses this, during
// startup when there is nothing to gracefully shut down yet.
func (l *Logger) Fatal(msg string, err error, fields map[string]interface{}) {
	withFields(l.zl.Fatal().Err(err), fields).Msg(msg)
}

// With returns a child logger that carries the fields on every line.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	ctx := l.zl.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{zl: ctx.Logger()}
}

// WithRequestID returns a child logger stamped with the request id, so every
// line a handler writes can be correlated back to one HTTP request.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{zl: l.zl.With().Str("request_id", requestID).Logger()}
}

func withFields(event *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	return event
}
