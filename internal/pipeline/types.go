// Package pipeline is the multi-model fan-out orchestrator. It sequences
// the Load -> Extract -> Transcribe -> Summarize -> Derive stages, fans a
// transcript out across the configured summarization models and each
// summary out across the derivative generators, validates every artifact
// before trusting it, and decides which failures skip a combination versus
// abort the run.
package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/config"
)

// Stage is one pipeline phase.
type Stage string

const (
	StageLoad       Stage = "load"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageSummarize  Stage = "summarize"
	StageDerive     Stage = "derive"
)

// State is the orchestrator's position in the run state machine.
// Completed and Aborted are terminal.
type State string

const (
	StateLoading      State = "loading"
	StateExtracting   State = "extracting"
	StateTranscribing State = "transcribing"
	StateSummarizing  State = "summarizing"
	StateDeriving     State = "deriving"
	StateCompleted    State = "completed"
	StateAborted      State = "aborted"
)

// RunContext identifies one end-to-end pipeline invocation. It is created
// at run start, owned by the orchestrator, and never mutated afterwards.
type RunContext struct {
	ID                  string
	Source              string
	Stem                string
	TranscriptionModels []string
	SummarizationModels []string
}

// NewRunContext snapshots the configured model lists for one run of the
// given source.
func NewRunContext(source string, cfg *config.Config) RunContext {
	stem := SourceStem(source)
	return RunContext{
		ID:                  fmt.Sprintf("%s_%s", stem, uuid.NewString()[:8]),
		Source:              source,
		Stem:                stem,
		TranscriptionModels: append([]string(nil), cfg.Models.Transcription...),
		SummarizationModels: append([]string(nil), cfg.Models.Summarization...),
	}
}

// SourceStem derives the artifact naming stem from a source reference:
// the base name without extension, with path-hostile characters replaced.
func SourceStem(source string) string {
	base := filepath.Base(strings.TrimSuffix(source, "/"))
	if idx := strings.IndexAny(base, "?#"); idx >= 0 {
		base = base[:idx]
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '"', '<', '>', '|', '=', '&', ' ':
			return '_'
		}
		return r
	}, stem)
	if stem == "" {
		return "video"
	}
	return stem
}

// StageResult is the outcome of one stage attempt: either a validated
// artifact (path and size) or a failure reason, never both.
type StageResult struct {
	Path string
	Size int64
	Err  error
}

// Succeeded builds a success result for a validated artifact.
func Succeeded(path string, size int64) StageResult {
	return StageResult{Path: path, Size: size}
}

// Failed builds a failure result.
func Failed(err error) StageResult {
	return StageResult{Err: err}
}

// OK reports whether the stage attempt produced a usable artifact.
func (r StageResult) OK() bool {
	return r.Err == nil
}

// Combination identifies one fan-out branch: the upstream artifact or
// model it consumes and the model or generator applied to it. Singleton
// stages leave Source and Model empty.
type Combination struct {
	Stage  Stage
	Source string
	Model  string
}

// Key is the registry key for the combination, unique per distinct pair.
func (c Combination) Key() string {
	parts := []string{string(c.Stage)}
	if c.Source != "" {
		parts = append(parts, c.Source)
	}
	if c.Model != "" {
		parts = append(parts, c.Model)
	}
	return strings.Join(parts, "/")
}

// Label is the human-readable form used in logs and reports.
func (c Combination) Label() string {
	switch {
	case c.Source != "" && c.Model != "":
		return c.Source + " × " + c.Model
	case c.Model != "":
		return c.Model
	default:
		return string(c.Stage)
	}
}

// Skip records one recoverable failure: the combination that was excluded
// and why. Skips never block sibling combinations.
type Skip struct {
	Stage       Stage
	Combination Combination
	Reason      string
}

// Result is the orchestrator's final answer: the full artifact registry
// plus every skipped combination, so callers can distinguish full from
// partial coverage.
type Result struct {
	Run       RunContext
	State     State
	LastStage Stage
	Reason    string
	Artifacts *artifact.Registry
	Skipped   []Skip
}

// FullyCovered reports whether the run completed with every configured
// combination succeeding.
func (r *Result) FullyCovered() bool {
	return r.State == StateCompleted && len(r.Skipped) == 0
}
