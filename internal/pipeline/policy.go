package pipeline

import (
	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/pkg/textchunk"
)

// A transcript under this many words is suspicious; the transcribe runner
// retries once with a wider beam before giving up on the model.
const minTranscriptWords = 10

// Policies are the per-stage validation rules. They are fixed at run start
// and never mutated during a run.
type Policies struct {
	Video      artifact.Rule
	Audio      artifact.Rule
	Transcript artifact.Rule
	Summary    artifact.Rule
	Derivative artifact.Rule
}

// DefaultPolicies returns the stock thresholds: a loaded video and every
// derivative must be non-trivial, extracted audio must clear the
// silent-stream floor, transcripts need both bulk and a minimum word
// count, summaries need at least 200 bytes of content.
func DefaultPolicies() Policies {
	return Policies{
		Video:      artifact.Rule{MinBytes: 100},
		Audio:      artifact.Rule{MinBytes: 1024},
		Transcript: artifact.Rule{MinBytes: 500, MinUnits: minTranscriptWords, CountUnits: textchunk.WordCount},
		Summary:    artifact.Rule{MinBytes: 200},
		Derivative: artifact.Rule{MinBytes: 100},
	}
}
