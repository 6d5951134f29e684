package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/provider"
	"github.com/nguyentantai21042004/video-insight/pkg/textchunk"
)

const summaryPrompt = `You are analyzing the transcript of an educational video.
Write a detailed markdown summary of the section below. Keep every main
point in the order it appears, explain each step, and bold key terms.

Transcript section:
---
%s
---`

func (o *Orchestrator) runLoad(ctx context.Context, run RunContext) StageResult {
	path, err := o.deps.Loader.Normalize(ctx, run.Source)
	if err != nil {
		return Failed(err)
	}
	if !o.policies.Video.Check(path) {
		return Failed(fmt.Errorf("loaded video failed validation: %s", path))
	}
	return Succeeded(path, fileSize(path))
}

func (o *Orchestrator) runExtract(ctx context.Context, videoPath string) StageResult {
	path, err := o.deps.Extractor.Extract(ctx, videoPath)
	if err != nil {
		return Failed(err)
	}
	if !o.policies.Audio.Check(path) {
		return Failed(fmt.Errorf("extracted audio failed validation: %s", path))
	}
	return Succeeded(path, fileSize(path))
}

// runTranscribe runs one transcription model against the audio. A
// transcript under minTranscriptWords triggers exactly one retry with a
// wider decoding beam; inference is expensive, so there is no second
// retry.
func (o *Orchestrator) runTranscribe(ctx context.Context, run RunContext, audioPath, modelID string) StageResult {
	transcriber, ok := o.deps.Transcribers[modelID]
	if !ok {
		return Failed(fmt.Errorf("no backend for transcription model %s", modelID))
	}

	text, err := transcriber.Transcribe(ctx, audioPath, provider.TranscribeOptions{})
	if err != nil {
		return Failed(err)
	}

	if words := textchunk.WordCount(text); words < minTranscriptWords {
		o.deps.Logger.Warn(ctx, "Transcript from %s suspiciously short (%d words), retrying with wider beam", modelID, words)
		text, err = transcriber.Transcribe(ctx, audioPath, provider.TranscribeOptions{WideBeam: true})
		if err != nil {
			return Failed(err)
		}
		if words = textchunk.WordCount(text); words < minTranscriptWords {
			return Failed(fmt.Errorf("transcript too short after retry (%d words)", words))
		}
	}

	out := o.deps.Allocator.Allocate(filepath.Join(o.cfg.Paths.Transcripts, run.Stem+"_"+modelID+".txt"))
	if err := os.WriteFile(out, []byte(text), 0644); err != nil {
		return Failed(fmt.Errorf("write transcript: %w", err))
	}
	if !o.policies.Transcript.Check(out) {
		return Failed(fmt.Errorf("transcript failed validation: %s", out))
	}
	return Succeeded(out, fileSize(out))
}

// runSummarize summarizes one transcript with one model. Transcripts over
// the model input budget are chunked on sentence boundaries, each chunk is
// summarized independently, and the chunk summaries are concatenated in
// order with a single space. There is no second summarization pass over
// the concatenation.
func (o *Orchestrator) runSummarize(ctx context.Context, transcriptPath, modelID string) StageResult {
	generator, ok := o.deps.Generators[modelID]
	if !ok {
		return Failed(fmt.Errorf("no backend for summarization model %s", modelID))
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return Failed(fmt.Errorf("read transcript: %w", err))
	}
	text := string(data)

	chunks := []string{text}
	maxTokens := o.cfg.Chunking.MaxTokens
	if textchunk.WordCount(text) > maxTokens {
		chunks = textchunk.Chunk(text, maxTokens, textchunk.WordCount)
		o.deps.Logger.Info(ctx, "Transcript over %d tokens, summarizing %d chunks", maxTokens, len(chunks))
	}

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		part, err := generator.Generate(ctx, fmt.Sprintf(summaryPrompt, chunk))
		if err != nil {
			return Failed(err)
		}
		parts = append(parts, strings.TrimSpace(part))
	}
	summary := strings.Join(parts, " ")

	stem := strings.TrimSuffix(filepath.Base(transcriptPath), filepath.Ext(transcriptPath))
	out := o.deps.Allocator.Allocate(filepath.Join(o.cfg.Paths.Summaries, stem+"_"+modelID+".md"))
	if err := os.WriteFile(out, []byte(summary), 0644); err != nil {
		return Failed(fmt.Errorf("write summary: %w", err))
	}
	if !o.policies.Summary.Check(out) {
		return Failed(fmt.Errorf("summary failed validation: %s", out))
	}
	return Succeeded(out, fileSize(out))
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
