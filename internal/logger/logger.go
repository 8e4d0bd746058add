// Package logger provides structured logging for cardmanage.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured
const DefaultLevel = "warn"

// Logger wraps logrus logger
type Logger struct {
	log *logrus.Logger
}

// Entry accumulates fields until Msg is called
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a new logger writing to output (stderr when nil).
// Unknown levels fall back to DefaultLevel.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)
	log.SetLevel(parseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("panic", io.Discard)
}

func parseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed, _ = logrus.ParseLevel(DefaultLevel)
	}
	return parsed
}

// SetLevel changes the level after construction, e.g. once config is loaded
func (l *Logger) SetLevel(level string) {
	l.log.SetLevel(parseLevel(level))
}

// Level returns the active level name
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: level}
}

// Debug starts a debug entry
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info entry
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warning entry
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error entry
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string slice field
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, ","))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field in milliseconds
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
