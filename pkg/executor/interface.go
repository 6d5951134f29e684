package executor

import "context"

// Executor defines the interface for executing external commands
// (ffmpeg, ffprobe, whisper.cpp, yt-dlp, graphviz dot).
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
}
