package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RunLogger is a per-run log sink: an info log receiving info and above,
// an error log receiving errors only, both mirrored to the console. One
// RunLogger is created at run start, passed by reference into every stage,
// and closed at run end. It is never shared across runs.
type RunLogger struct {
	mu       sync.Mutex
	console  *log.Logger
	info     *log.Logger
	errors   *log.Logger
	level    string
	infoPath string
	errPath  string
	files    []*os.File
}

// NewRun opens the per-run log files under logsDir, named
// <stem>_<timestamp>.log and <stem>_<timestamp>_error.log.
func NewRun(logsDir, stem, level string) (*RunLogger, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	infoPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", stem, timestamp))
	errPath := filepath.Join(logsDir, fmt.Sprintf("%s_%s_error.log", stem, timestamp))

	infoFile, err := os.OpenFile(infoPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open info log: %w", err)
	}
	errFile, err := os.OpenFile(errPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		infoFile.Close()
		return nil, fmt.Errorf("open error log: %w", err)
	}

	return &RunLogger{
		console:  log.New(os.Stderr, "", log.LstdFlags),
		info:     log.New(infoFile, "", log.LstdFlags),
		errors:   log.New(errFile, "", log.LstdFlags),
		level:    strings.ToLower(level),
		infoPath: infoPath,
		errPath:  errPath,
		files:    []*os.File{infoFile, errFile},
	}, nil
}

// Paths returns the info and error log file paths.
func (l *RunLogger) Paths() (infoPath, errorPath string) {
	return l.infoPath, l.errPath
}

// Close flushes and closes the log files.
func (l *RunLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.files = nil
	return firstErr
}

func (l *RunLogger) write(level, msg string, args ...interface{}) {
	current, ok := levels[l.level]
	if !ok {
		current = 1
	}
	target := levels[level]
	if target < current {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := "[" + strings.ToUpper(level) + "] " + msg
	l.console.Printf(line, args...)

	// Debug stays console-only, matching the original run logs.
	if target >= levels["info"] && l.files != nil {
		l.info.Printf(line, args...)
	}
	if target >= levels["error"] && l.files != nil {
		l.errors.Printf(line, args...)
	}
}

func (l *RunLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write("debug", msg, args...)
}

func (l *RunLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write("info", msg, args...)
}

func (l *RunLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write("warn", msg, args...)
}

func (l *RunLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write("error", msg, args...)
}
