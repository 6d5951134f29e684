// Package provider holds the inference backends. Model ids map to
// implementations through BuildTranscribers / BuildGenerators at
// configuration time; the pipeline never knows which backend is behind an
// id.
package provider

import (
	"context"
	"errors"
)

// ErrInference marks failures at the inference boundary.
var ErrInference = errors.New("inference failed")

// TranscribeOptions tunes one transcription attempt. WideBeam widens the
// decoder search and is used for the single retry after a suspiciously
// short transcript.
type TranscribeOptions struct {
	WideBeam bool
}

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (string, error)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranscribeFunc adapts a function to the Transcriber interface.
type TranscribeFunc func(ctx context.Context, audioPath string, opts TranscribeOptions) (string, error)

func (f TranscribeFunc) Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (string, error) {
	return f(ctx, audioPath, opts)
}

// GenerateFunc adapts a function to the Generator interface.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

func (f GenerateFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
