package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

type whisperTranscriber struct {
	binary    string
	modelPath string
	modelID   string
	language  string
	prompt    string
	threads   int
	exec      executor.Executor
	logger    logger.Logger
}

// NewWhisper creates a Transcriber backed by the whisper.cpp CLI, loading
// <model_dir>/<modelID>.bin.
func NewWhisper(cfg config.WhisperConfig, modelID string, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperTranscriber{
		binary:    cfg.BinaryPath,
		modelPath: filepath.Join(cfg.ModelDir, modelID+".bin"),
		modelID:   modelID,
		language:  cfg.Language,
		prompt:    cfg.Prompt,
		threads:   cfg.Threads,
		exec:      exec,
		logger:    log,
	}
}

func (w *whisperTranscriber) Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (string, error) {
	// whisper.cpp writes <prefix>.txt; keep the prefix next to the audio
	// so concurrent models never clash.
	prefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_" + w.modelID

	args := []string{
		"-m", w.modelPath,
		"-f", audioPath,
		"-otxt",
		"-l", w.language,
		"-t", strconv.Itoa(w.threads),
		"-ml", "0",
		"-mc", "0",
		"--output-file", prefix,
	}
	if w.prompt != "" {
		args = append(args, "--prompt", w.prompt)
	}
	if opts.WideBeam {
		// Wider search for the retry pass, trades time for accuracy.
		args = append(args, "-bs", "5", "-bo", "5")
	}

	w.logger.Info(ctx, "Transcribing with %s (%d threads): %s", w.modelID, w.threads, audioPath)

	if _, err := w.exec.Execute(ctx, w.binary, args...); err != nil {
		return "", fmt.Errorf("%w: whisper %s: %v", ErrInference, w.modelID, err)
	}

	textPath := prefix + ".txt"
	data, err := os.ReadFile(textPath)
	if err != nil {
		return "", fmt.Errorf("%w: whisper %s produced no output: %v", ErrInference, w.modelID, err)
	}
	if err := os.Remove(textPath); err != nil {
		w.logger.Warn(ctx, "Failed to clean up %s: %v", textPath, err)
	}

	return strings.TrimSpace(string(data)), nil
}
