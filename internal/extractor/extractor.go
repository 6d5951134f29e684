package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

// Extracted audio below this size is treated as a silent or empty stream.
const minAudioBytes = 1024

type implExtractor struct {
	audioDir string
	exec     executor.Executor
	alloc    *artifact.Allocator
	logger   logger.Logger
}

// New creates an Extractor writing WAV files into audioDir.
func New(audioDir string, exec executor.Executor, alloc *artifact.Allocator, log logger.Logger) Extractor {
	return &implExtractor{
		audioDir: audioDir,
		exec:     exec,
		alloc:    alloc,
		logger:   log,
	}
}

// Extract converts the video's audio track to single-channel 16kHz 16-bit
// PCM, the convention every transcription backend here expects.
func (e *implExtractor) Extract(ctx context.Context, videoPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := e.alloc.Allocate(filepath.Join(e.audioDir, stem+".wav"))

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	args := []string{
		"-i", videoPath,
		"-vn", // No video
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := e.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("%w: no output produced", ErrExtraction)
	}
	if info.Size() < minAudioBytes {
		return "", fmt.Errorf("%w: output too small (%d bytes), likely silent stream", ErrExtraction, info.Size())
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
