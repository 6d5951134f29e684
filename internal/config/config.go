package config

import "fmt"

type Config struct {
	VideoSource string            `yaml:"video_source"`
	Models      ModelsConfig      `yaml:"models"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

// ModelsConfig lists the models to fan out over, in processing order.
type ModelsConfig struct {
	Transcription []string `yaml:"transcription"`
	Summarization []string `yaml:"summarization"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

type ChunkingConfig struct {
	MaxTokens int `yaml:"max_tokens"`
}

type PathsConfig struct {
	Input       string `yaml:"input"`
	Videos      string `yaml:"videos"`
	Audio       string `yaml:"audio"`
	Transcripts string `yaml:"transcripts"`
	Summaries   string `yaml:"summaries"`
	Notes       string `yaml:"notes"`
	FAQs        string `yaml:"faqs"`
	Mindmaps    string `yaml:"mindmaps"`
	Logs        string `yaml:"logs"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate checks required keys and fills defaults. Model lists are
// deduplicated preserving order, since equal combinations would collide in
// the artifact registry.
func (c *Config) Validate() error {
	if c.VideoSource == "" {
		return fmt.Errorf("video_source is required")
	}
	if len(c.Models.Transcription) == 0 {
		return fmt.Errorf("models.transcription is required")
	}
	if len(c.Models.Summarization) == 0 {
		return fmt.Errorf("models.summarization is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.ModelDir == "" {
		return fmt.Errorf("whisper.model_dir is required")
	}

	c.Models.Transcription = dedupe(c.Models.Transcription)
	c.Models.Summarization = dedupe(c.Models.Summarization)

	if c.Whisper.Language == "" {
		c.Whisper.Language = "en"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Chunking.MaxTokens == 0 {
		c.Chunking.MaxTokens = 1024
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	c.Paths.applyDefaults()

	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
