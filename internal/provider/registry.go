package provider

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

// BuildTranscribers resolves the configured transcription model ids to
// backends. Unknown ids are rejected here, before the run starts.
func BuildTranscribers(cfg *config.Config, exec executor.Executor, log logger.Logger) (map[string]Transcriber, error) {
	transcribers := make(map[string]Transcriber, len(cfg.Models.Transcription))
	for _, id := range cfg.Models.Transcription {
		switch {
		case strings.HasPrefix(id, "whisper"):
			transcribers[id] = NewWhisper(cfg.Whisper, id, exec, log)
		default:
			return nil, fmt.Errorf("unsupported transcription model: %s", id)
		}
	}
	return transcribers, nil
}

// BuildGenerators resolves the configured summarization model ids to
// backends.
func BuildGenerators(cfg *config.Config, log logger.Logger) (map[string]Generator, error) {
	generators := make(map[string]Generator, len(cfg.Models.Summarization))
	for _, id := range cfg.Models.Summarization {
		switch {
		case strings.HasPrefix(id, "gemini"):
			generators[id] = NewGemini(cfg.Gemini.APIKeys, id, log)
		default:
			return nil, fmt.Errorf("unsupported summarization model: %s", id)
		}
	}
	return generators, nil
}
