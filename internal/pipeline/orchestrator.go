package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/extractor"
	"github.com/nguyentantai21042004/video-insight/internal/loader"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/notes"
	"github.com/nguyentantai21042004/video-insight/internal/provider"
)

// Deps are the external collaborators one run operates on. Transcribers
// and Generators map model ids to backends; iteration always follows the
// configured order, not map order.
type Deps struct {
	Loader       loader.Normalizer
	Extractor    extractor.Extractor
	Transcribers map[string]provider.Transcriber
	Generators   map[string]provider.Generator
	Notes        notes.NotesGenerator
	Mindmap      notes.MindmapGenerator
	Allocator    *artifact.Allocator
	Logger       logger.Logger
}

// Orchestrator drives the fan-out state machine for a run.
type Orchestrator struct {
	cfg      *config.Config
	deps     Deps
	policies Policies
}

// New creates an Orchestrator with the default validation policies.
func New(cfg *config.Config, deps Deps) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		deps:     deps,
		policies: DefaultPolicies(),
	}
}

type artifactRef struct {
	comb Combination
	path string
}

// Run executes the full pipeline for one RunContext. The returned Result
// always carries the artifact registry and the skip list; err is non-nil
// only when the run aborted. Within a run, stages execute strictly
// sequentially and fan-out branches iterate in configuration order, which
// makes artifact naming deterministic.
func (o *Orchestrator) Run(ctx context.Context, run RunContext) (*Result, error) {
	log := o.deps.Logger
	res := &Result{
		Run:       run,
		State:     StateLoading,
		LastStage: StageLoad,
		Artifacts: artifact.NewRegistry(),
	}

	log.Info(ctx, "Starting run %s: %s", run.ID, run.Source)

	// Loading: no video, nothing downstream is possible.
	lr := o.runLoad(ctx, run)
	if !lr.OK() {
		return o.abort(ctx, res, StageLoad, fmt.Sprintf("video loading failed: %v", lr.Err))
	}
	o.register(res, Combination{Stage: StageLoad}, lr.Path)
	log.Info(ctx, "Video loaded: %s (%d bytes)", lr.Path, lr.Size)

	// Extracting
	res.State, res.LastStage = StateExtracting, StageExtract
	er := o.runExtract(ctx, lr.Path)
	if !er.OK() {
		return o.abort(ctx, res, StageExtract, fmt.Sprintf("audio extraction failed: %v", er.Err))
	}
	o.register(res, Combination{Stage: StageExtract}, er.Path)

	// Transcribing: each configured model independently; a failing model
	// is skipped, not fatal, unless every model fails.
	res.State, res.LastStage = StateTranscribing, StageTranscribe
	var transcripts []artifactRef
	for _, modelID := range run.TranscriptionModels {
		comb := Combination{Stage: StageTranscribe, Model: modelID}
		sr := o.runTranscribe(ctx, run, er.Path, modelID)
		if !sr.OK() {
			log.Error(ctx, "Transcription with %s failed: %v", modelID, sr.Err)
			res.Skipped = append(res.Skipped, Skip{Stage: StageTranscribe, Combination: comb, Reason: sr.Err.Error()})
			continue
		}
		o.register(res, comb, sr.Path)
		transcripts = append(transcripts, artifactRef{comb: comb, path: sr.Path})
		log.Info(ctx, "Transcription with %s completed: %s", modelID, sr.Path)
	}
	if len(transcripts) == 0 {
		return o.abort(ctx, res, StageTranscribe, "all transcription attempts failed")
	}

	// Summarizing: Cartesian product of successful transcripts and
	// configured summarization models.
	res.State, res.LastStage = StateSummarizing, StageSummarize
	var summaries []artifactRef
	for _, transcript := range transcripts {
		for _, modelID := range run.SummarizationModels {
			comb := Combination{Stage: StageSummarize, Source: transcript.comb.Model, Model: modelID}
			sr := o.runSummarize(ctx, transcript.path, modelID)
			if !sr.OK() {
				log.Error(ctx, "Summarization %s failed: %v", comb.Label(), sr.Err)
				res.Skipped = append(res.Skipped, Skip{Stage: StageSummarize, Combination: comb, Reason: sr.Err.Error()})
				continue
			}
			o.register(res, comb, sr.Path)
			summaries = append(summaries, artifactRef{comb: comb, path: sr.Path})
			log.Info(ctx, "Summarization %s completed: %s", comb.Label(), sr.Path)
		}
	}
	if len(summaries) == 0 {
		return o.abort(ctx, res, StageSummarize, "all summarization attempts failed")
	}

	// Deriving: per-summary generators run independently; this stage can
	// only reach Completed, never Aborted.
	res.State, res.LastStage = StateDeriving, StageDerive
	for _, summary := range summaries {
		o.deriveMindmap(ctx, res, summary)
		o.deriveNotes(ctx, res, summary)
	}

	res.State = StateCompleted
	log.Info(ctx, "Run %s completed: %d artifacts, %d combinations skipped",
		run.ID, res.Artifacts.Len(), len(res.Skipped))
	return res, nil
}

func (o *Orchestrator) deriveMindmap(ctx context.Context, res *Result, summary artifactRef) {
	sourceID := summary.comb.Source + "_" + summary.comb.Model
	comb := Combination{Stage: StageDerive, Source: sourceID, Model: "mindmap"}

	path, err := o.deps.Mindmap.GenerateMindmap(ctx, summary.path)
	if err == nil && !o.policies.Derivative.Check(path) {
		err = fmt.Errorf("mind map failed validation: %s", path)
	}
	if err != nil {
		o.deps.Logger.Error(ctx, "Mind map generation for %s failed: %v", sourceID, err)
		res.Skipped = append(res.Skipped, Skip{Stage: StageDerive, Combination: comb, Reason: err.Error()})
		return
	}
	o.register(res, comb, path)
}

func (o *Orchestrator) deriveNotes(ctx context.Context, res *Result, summary artifactRef) {
	sourceID := summary.comb.Source + "_" + summary.comb.Model
	comb := Combination{Stage: StageDerive, Source: sourceID, Model: "notes"}

	notesPath, faqPath, err := o.deps.Notes.GenerateNotes(ctx, summary.path)
	if err == nil && !(o.policies.Derivative.Check(notesPath) && o.policies.Derivative.Check(faqPath)) {
		err = fmt.Errorf("notes/faq failed validation")
	}
	if err != nil {
		o.deps.Logger.Error(ctx, "Notes/FAQ generation for %s failed: %v", sourceID, err)
		res.Skipped = append(res.Skipped, Skip{Stage: StageDerive, Combination: comb, Reason: err.Error()})
		return
	}
	o.register(res, comb, notesPath)
	o.register(res, Combination{Stage: StageDerive, Source: sourceID, Model: "faqs"}, faqPath)
}

// register adds a validated artifact to the registry. The orchestrator
// never produces duplicate combinations (model lists are deduplicated at
// config time), so a collision here is a programming error worth logging.
func (o *Orchestrator) register(res *Result, comb Combination, path string) {
	if err := res.Artifacts.Add(comb.Key(), path); err != nil {
		o.deps.Logger.Error(context.Background(), "Registry collision: %v", err)
	}
}

func (o *Orchestrator) abort(ctx context.Context, res *Result, stage Stage, reason string) (*Result, error) {
	res.State = StateAborted
	res.LastStage = stage
	res.Reason = reason
	o.deps.Logger.Error(ctx, "Run %s aborted at %s: %s", res.Run.ID, stage, reason)
	return res, fmt.Errorf("run aborted at %s stage: %s", stage, reason)
}
