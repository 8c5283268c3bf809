package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging for the pipeline stages.
type Logger struct {
	out   io.Writer
	err   io.Writer
	level Level
	now   func() time.Time
}

// NewLogger creates a Logger writing info/warn/debug to stdout and errors
// to stderr.
func NewLogger(level Level) *Logger {
	return &Logger{out: os.Stdout, err: os.Stderr, level: level, now: time.Now}
}

// NewWriterLogger sends every level to w.
func NewWriterLogger(w io.Writer, level Level) *Logger {
	return &Logger{out: w, err: w, level: level, now: time.Now}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return NewWriterLogger(io.Discard, LevelError+1)
}

func (l *Logger) write(w io.Writer, lvl Level, tag, format string, args []any) {
	if lvl < l.level {
		return
	}
	ts := l.now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "[%s] %s %s\n", ts, tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	l.write(l.out, LevelInfo, "\033[32mINFO\033[0m ", format, args)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(l.out, LevelWarn, "\033[33mWARN\033[0m ", format, args)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(l.err, LevelError, "\033[31mERROR\033[0m", format, args)
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(l.out, LevelDebug, "\033[36mDEBUG\033[0m", format, args)
}
