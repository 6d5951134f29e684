package loader

import (
	"context"
	"errors"
)

// Failure classes for source normalization. The orchestrator only cares
// that loading failed; callers that want to distinguish use errors.Is.
var (
	ErrUnsupportedSource = errors.New("unsupported video source")
	ErrDownload          = errors.New("video download failed")
	ErrInvalidMedia      = errors.New("invalid media file")
)

// Normalizer turns a video source reference (local path or URL) into a
// local media file path.
type Normalizer interface {
	Normalize(ctx context.Context, source string) (string, error)
}
