package watcher

import "context"

// Watcher monitors an input directory and hands new video files to its
// handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// RunHandler processes one detected video file (typically a full pipeline
// run).
type RunHandler func(ctx context.Context, videoPath string) error
