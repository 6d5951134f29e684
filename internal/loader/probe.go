package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// probe validates the media container with ffprobe: it must parse, carry
// an audio stream, and run for at least one second.
func (n *implNormalizer) probe(ctx context.Context, path string) error {
	out, err := n.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return fmt.Errorf("%w: ffprobe: %v", ErrInvalidMedia, err)
	}

	var info probeOutput
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		return fmt.Errorf("%w: parse ffprobe output: %v", ErrInvalidMedia, err)
	}

	duration, err := strconv.ParseFloat(info.Format.Duration, 64)
	if err != nil || duration < 1.0 {
		return fmt.Errorf("%w: duration below one second", ErrInvalidMedia)
	}

	for _, stream := range info.Streams {
		if stream.CodecType == "audio" {
			return nil
		}
	}
	return fmt.Errorf("%w: no audio stream", ErrInvalidMedia)
}
