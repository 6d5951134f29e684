package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/video-insight/internal/logger"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

type implWatcher struct {
	inputDir      string
	handler       RunHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New creates a Watcher that starts one pipeline run per new video file,
// with at most maxConcurrent runs in flight.
func New(inputDir string, handler RunHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks, dispatching runs for new video files until ctx is done.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new videos (max concurrent runs: %d)", w.inputDir, w.maxConcurrent)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight runs to finish...")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New video detected: %s", event.Name)

			// Small delay so the file is fully written before the run
			// starts.
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(videoPath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, videoPath); err != nil {
						w.logger.Error(ctx, "Run for %s failed: %v", videoPath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range videoExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
