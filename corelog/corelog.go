// Package corelog provides a small leveled logger for the core's
// per-cycle tracing.
//
// No repo in the example pack imports a third-party structured logging
// library from application code, so this follows the closest available
// precedent, ehrlich-b-go-ublk/internal/logging/logger.go: a minimal
// wrapper around the standard log package with a level and a
// configurable output writer, rather than an unconditional log.Printf
// scattered through the core.
package corelog

import (
	"io"
	"log"
	"os"
)

// Level is a logging verbosity level.
type Level int

// Logging levels, from least to most verbose.
const (
	LevelSilent Level = iota
	LevelInfo
	LevelTrace
)

// Logger gates cycle-by-cycle trace output behind a level.
type Logger struct {
	level Level
	log   *log.Logger
}

// Config configures a Logger.
type Config struct {
	Level  Level
	Output io.Writer
}

// DefaultConfig returns the Config of a silent logger that writes to
// stderr if its level is ever raised.
func DefaultConfig() Config {
	return Config{Level: LevelSilent, Output: os.Stderr}
}

// New creates a Logger from Config.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return &Logger{
		level: cfg.Level,
		log:   log.New(out, "", 0),
	}
}

// Tracef logs a per-cycle trace message if the logger's level is at
// least LevelTrace.
func (l *Logger) Tracef(format string, args ...any) {
	if l == nil || l.level < LevelTrace {
		return
	}
	l.log.Printf(format, args...)
}

// Infof logs a summary message if the logger's level is at least LevelInfo.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil || l.level < LevelInfo {
		return
	}
	l.log.Printf(format, args...)
}
