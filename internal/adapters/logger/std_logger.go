package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/mesi/internal/ports"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a new standard logger adapter writing to stderr, so
// that it never mixes with results printed on stdout.
func NewStdLogger() (ports.Logger, error) {
	return NewWriterLogger(os.Stderr, false)
}

// NewWriterLogger creates a logger writing to w, as JSON when jsonFormat is set.
func NewWriterLogger(w io.Writer, jsonFormat bool) (ports.Logger, error) {
	return NewCustomStdLogger(l.Config{
		Output:      w,
		JsonFormat:  jsonFormat,
		AsyncWrite:  false,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   false,
		Metrics:     false,
	})
}

// NewCustomStdLogger creates a new standard logger with custom configuration.
func NewCustomStdLogger(config l.Config) (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(config)
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// Debug logs a debug message.
func (l *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (l *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (l *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (l *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

// Close closes the logger.
func (l *StdLogger) Close() error {
	return l.logger.Close()
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// ParseLevel parses debug, info, warn, error or off.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelOff, fmt.Errorf("unknown log level %q", s)
}

// leveled drops messages below min before they reach next.
type leveled struct {
	next ports.Logger
	min  Level
}

// WithLevel filters out messages of next below min.
func WithLevel(next ports.Logger, min Level) ports.Logger {
	return &leveled{next: next, min: min}
}

func (lv *leveled) Debug(msg string, kv ...interface{}) {
	if lv.min <= LevelDebug {
		lv.next.Debug(msg, kv...)
	}
}

func (lv *leveled) Info(msg string, kv ...interface{}) {
	if lv.min <= LevelInfo {
		lv.next.Info(msg, kv...)
	}
}

func (lv *leveled) Warn(msg string, kv ...interface{}) {
	if lv.min <= LevelWarn {
		lv.next.Warn(msg, kv...)
	}
}

func (lv *leveled) Error(msg string, kv ...interface{}) {
	if lv.min <= LevelError {
		lv.next.Error(msg, kv...)
	}
}

func (lv *leveled) Close() error {
	return lv.next.Close()
}

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() ports.Logger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Close() error                 { return nil }
