package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/pipeline"
)

func completedResult(t *testing.T) *pipeline.Result {
	t.Helper()
	reg := artifact.NewRegistry()
	require.NoError(t, reg.Add("load", "/data/videos/lecture.mp4"))
	require.NoError(t, reg.Add("extract", "/data/audios/lecture.wav"))
	require.NoError(t, reg.Add("transcribe/whisper-base", "/data/outputs/transcripts/lecture_whisper-base.txt"))
	require.NoError(t, reg.Add("summarize/whisper-base/gemini-2.5-flash", "/data/outputs/summaries/lecture_whisper-base_gemini-2.5-flash.md"))

	return &pipeline.Result{
		Run:       pipeline.RunContext{ID: "lecture_ab12cd34"},
		State:     pipeline.StateCompleted,
		Artifacts: reg,
	}
}

func TestRenderFullCoverage(t *testing.T) {
	out := Render(completedResult(t))

	assert.Contains(t, out, "whisper-base × gemini-2.5-flash")
	assert.Contains(t, out, "Run lecture_ab12cd34 completed: all 4 combinations succeeded")
	assert.NotContains(t, out, "skipped")
}

func TestRenderPartialCoverage(t *testing.T) {
	res := completedResult(t)
	res.Skipped = []pipeline.Skip{{
		Stage: pipeline.StageTranscribe,
		Combination: pipeline.Combination{
			Stage: pipeline.StageTranscribe,
			Model: "whisper-small",
		},
		Reason: "model file missing",
	}}

	out := Render(res)

	assert.Contains(t, out, "whisper-small")
	assert.Contains(t, out, "model file missing")
	assert.Contains(t, out, "completed with partial coverage: 4 artifacts, 1 combinations skipped")
}

func TestRenderAborted(t *testing.T) {
	res := &pipeline.Result{
		Run:       pipeline.RunContext{ID: "lecture_ab12cd34"},
		State:     pipeline.StateAborted,
		LastStage: pipeline.StageTranscribe,
		Reason:    "all transcription attempts failed",
		Artifacts: artifact.NewRegistry(),
	}

	out := Render(res)

	assert.Contains(t, out, "ABORTED at transcribe: all transcription attempts failed")
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key       string
		wantStage string
		wantLabel string
	}{
		{"load", "load", "load"},
		{"transcribe/whisper-base", "transcribe", "whisper-base"},
		{"summarize/whisper-base/gemini-2.5-flash", "summarize", "whisper-base × gemini-2.5-flash"},
		{"derive/whisper-base_gemini-2.5-flash/mindmap", "derive", "whisper-base_gemini-2.5-flash × mindmap"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			stage, label := splitKey(tt.key)
			assert.Equal(t, tt.wantStage, stage)
			assert.Equal(t, tt.wantLabel, label)
		})
	}
}
