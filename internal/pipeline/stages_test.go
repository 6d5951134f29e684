package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/provider"
)

// countingTranscriber replays scripted outputs and records the options of
// every call.
type countingTranscriber struct {
	outputs []string
	errs    []error
	calls   []provider.TranscribeOptions
}

func (c *countingTranscriber) Transcribe(ctx context.Context, audioPath string, opts provider.TranscribeOptions) (string, error) {
	i := len(c.calls)
	c.calls = append(c.calls, opts)
	if i >= len(c.outputs) {
		i = len(c.outputs) - 1
	}
	var err error
	if i < len(c.errs) {
		err = c.errs[i]
	}
	return c.outputs[i], err
}

type countingGenerator struct {
	output  string
	prompts []string
}

func (c *countingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	return c.output, nil
}

func stageOrchestrator(t *testing.T, deps Deps) (*Orchestrator, *config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.Chunking.MaxTokens = 1024
	cfg.Paths.Transcripts = filepath.Join(dir, "transcripts")
	cfg.Paths.Summaries = filepath.Join(dir, "summaries")
	require.NoError(t, os.MkdirAll(cfg.Paths.Transcripts, 0755))
	require.NoError(t, os.MkdirAll(cfg.Paths.Summaries, 0755))

	if deps.Allocator == nil {
		deps.Allocator = artifact.NewAllocator()
	}
	if deps.Logger == nil {
		deps.Logger = logger.New("error")
	}
	return New(cfg, deps), cfg
}

func TestRunTranscribeRetriesShortTranscriptOnce(t *testing.T) {
	fake := &countingTranscriber{outputs: []string{"um yeah", longText(120)}}
	o, _ := stageOrchestrator(t, Deps{
		Transcribers: map[string]provider.Transcriber{"whisper-base": fake},
	})
	run := RunContext{Stem: "lecture"}

	sr := o.runTranscribe(context.Background(), run, "audio.wav", "whisper-base")

	require.True(t, sr.OK(), "retry should recover: %v", sr.Err)
	require.Len(t, fake.calls, 2)
	assert.False(t, fake.calls[0].WideBeam)
	assert.True(t, fake.calls[1].WideBeam, "retry uses a wider beam")
	assert.Equal(t, "lecture_whisper-base.txt", filepath.Base(sr.Path))

	data, err := os.ReadFile(sr.Path)
	require.NoError(t, err)
	assert.Equal(t, longText(120), string(data))
}

func TestRunTranscribeShortAfterRetryFails(t *testing.T) {
	fake := &countingTranscriber{outputs: []string{"um", "uh huh"}}
	o, _ := stageOrchestrator(t, Deps{
		Transcribers: map[string]provider.Transcriber{"whisper-base": fake},
	})

	sr := o.runTranscribe(context.Background(), RunContext{Stem: "lecture"}, "audio.wav", "whisper-base")

	require.False(t, sr.OK())
	assert.Len(t, fake.calls, 2, "exactly one retry, never more")
	assert.Contains(t, sr.Err.Error(), "transcript too short after retry")
}

func TestRunTranscribeErrorDoesNotRetry(t *testing.T) {
	fake := &countingTranscriber{
		outputs: []string{""},
		errs:    []error{errors.New("binary not found")},
	}
	o, _ := stageOrchestrator(t, Deps{
		Transcribers: map[string]provider.Transcriber{"whisper-base": fake},
	})

	sr := o.runTranscribe(context.Background(), RunContext{Stem: "lecture"}, "audio.wav", "whisper-base")

	require.False(t, sr.OK())
	assert.Len(t, fake.calls, 1, "the retry is for short output, not hard errors")
}

func TestRunTranscribeUnknownModel(t *testing.T) {
	o, _ := stageOrchestrator(t, Deps{Transcribers: map[string]provider.Transcriber{}})

	sr := o.runTranscribe(context.Background(), RunContext{Stem: "lecture"}, "audio.wav", "whisper-base")

	require.False(t, sr.OK())
	assert.Contains(t, sr.Err.Error(), "no backend for transcription model whisper-base")
}

func writeTranscript(t *testing.T, cfg *config.Config, name, text string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.Transcripts, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

// sentences returns n ten-word sentences.
func sentences(n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		words := make([]string, 10)
		for j := range words {
			words[j] = fmt.Sprintf("word%02d%02d", i, j)
		}
		parts[i] = strings.Join(words, " ") + "."
	}
	return strings.Join(parts, " ")
}

func TestRunSummarizeSingleChunk(t *testing.T) {
	fake := &countingGenerator{output: longText(60)}
	o, cfg := stageOrchestrator(t, Deps{
		Generators: map[string]provider.Generator{"gen-a": fake},
	})
	transcript := writeTranscript(t, cfg, "lecture_whisper-base.txt", longText(120))

	sr := o.runSummarize(context.Background(), transcript, "gen-a")

	require.True(t, sr.OK(), "summarize failed: %v", sr.Err)
	assert.Len(t, fake.prompts, 1, "transcript under the budget goes through in one piece")
	assert.Contains(t, fake.prompts[0], longText(120), "prompt carries the transcript text")
	assert.Equal(t, "lecture_whisper-base_gen-a.md", filepath.Base(sr.Path))
}

func TestRunSummarizeChunksLongTranscript(t *testing.T) {
	fake := &countingGenerator{output: longText(60)}
	o, cfg := stageOrchestrator(t, Deps{
		Generators: map[string]provider.Generator{"gen-a": fake},
	})
	cfg.Chunking.MaxTokens = 50

	// 12 sentences of 10 words against a 50 word budget packs greedily
	// into chunks of 5, 5 and 2 sentences.
	transcript := writeTranscript(t, cfg, "lecture_whisper-base.txt", sentences(12))

	sr := o.runSummarize(context.Background(), transcript, "gen-a")

	require.True(t, sr.OK(), "summarize failed: %v", sr.Err)
	assert.Len(t, fake.prompts, 3, "one model call per chunk")

	// Chunk summaries are concatenated in order with single spaces, with
	// no second summarization pass over the result.
	data, err := os.ReadFile(sr.Path)
	require.NoError(t, err)
	want := strings.Join([]string{longText(60), longText(60), longText(60)}, " ")
	assert.Equal(t, want, string(data))
}

func TestRunSummarizeUnknownModel(t *testing.T) {
	o, cfg := stageOrchestrator(t, Deps{Generators: map[string]provider.Generator{}})
	transcript := writeTranscript(t, cfg, "lecture_whisper-base.txt", longText(120))

	sr := o.runSummarize(context.Background(), transcript, "gen-a")

	require.False(t, sr.OK())
	assert.Contains(t, sr.Err.Error(), "no backend for summarization model gen-a")
}

func TestSourceStem(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"local file", "data/input/lecture.mp4", "lecture"},
		{"spaces sanitized", "data/input/my lecture.mp4", "my_lecture"},
		{"youtube url", "https://www.youtube.com/watch?v=abc123", "watch"},
		{"query string dropped", "https://cdn.example.com/talk.mp4?token=xyz", "talk"},
		{"trailing slash", "https://example.com/talks/", "talks"},
		{"empty falls back", "", "video"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceStem(tt.source))
		})
	}
}

func TestCombinationKeyAndLabel(t *testing.T) {
	tests := []struct {
		name      string
		comb      Combination
		wantKey   string
		wantLabel string
	}{
		{
			"singleton stage",
			Combination{Stage: StageLoad},
			"load",
			"load",
		},
		{
			"transcription model",
			Combination{Stage: StageTranscribe, Model: "whisper-base"},
			"transcribe/whisper-base",
			"whisper-base",
		},
		{
			"summary pair",
			Combination{Stage: StageSummarize, Source: "whisper-base", Model: "gemini-2.5-flash"},
			"summarize/whisper-base/gemini-2.5-flash",
			"whisper-base × gemini-2.5-flash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKey, tt.comb.Key())
			assert.Equal(t, tt.wantLabel, tt.comb.Label())
		})
	}
}
