package logger

import "context"

// Logger is the leveled, printf-style logging interface every component
// takes by reference. Run-scoped implementations additionally write per-run
// log files; see NewRun.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}
