package extractor

import (
	"context"
	"errors"
)

// ErrExtraction marks audio extraction failures, including empty-stream
// output.
var ErrExtraction = errors.New("audio extraction failed")

// Extractor pulls the audio track out of a local video file.
type Extractor interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}
