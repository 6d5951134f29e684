package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	mu      sync.Mutex
	console *log.Logger
	level   string
}

// New creates a console-only Logger instance
func New(level string) Logger {
	return &implLogger{
		console: log.New(os.Stderr, "", log.LstdFlags),
		level:   strings.ToLower(level),
	}
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) write(level, msg string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.console.Printf("["+strings.ToUpper(level)+"] "+msg, args...)
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write("debug", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write("info", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write("warn", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write("error", msg, args...)
}

// FormatError renders an error for log messages, empty for nil.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%v", err)
}
