package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

type implNormalizer struct {
	videosDir string
	exec      executor.Executor
	alloc     *artifact.Allocator
	logger    logger.Logger
	client    *http.Client
}

// New creates a Normalizer that downloads remote sources into videosDir
// and validates every result with ffprobe.
func New(videosDir string, exec executor.Executor, alloc *artifact.Allocator, log logger.Logger) Normalizer {
	return &implNormalizer{
		videosDir: videosDir,
		exec:      exec,
		alloc:     alloc,
		logger:    log,
		client:    http.DefaultClient,
	}
}

// Normalize resolves a local path, YouTube URL, or direct http(s) URL to a
// local media file. The result is probed before it is returned: a file
// with no audio track or a duration under one second fails with
// ErrInvalidMedia.
func (n *implNormalizer) Normalize(ctx context.Context, source string) (string, error) {
	var path string
	var err error

	switch {
	case isLocalFile(source):
		path = source
	case isYouTubeURL(source):
		path, err = n.downloadYouTube(ctx, source)
	case isHTTPURL(source):
		path, err = n.downloadDirect(ctx, source)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
	}
	if err != nil {
		return "", err
	}

	if err := n.probe(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

func isLocalFile(source string) bool {
	_, err := os.Stat(source)
	return err == nil
}

func isYouTubeURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	return host == "youtube.com" || host == "youtu.be"
}

func isHTTPURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// downloadYouTube fetches the video with yt-dlp as a single mp4 file.
func (n *implNormalizer) downloadYouTube(ctx context.Context, source string) (string, error) {
	target := n.alloc.Allocate(filepath.Join(n.videosDir, youtubeID(source)+".mp4"))

	n.logger.Info(ctx, "Downloading YouTube video: %s", source)
	args := []string{
		"-f", "mp4",
		"--no-playlist",
		"-o", target,
		source,
	}
	if _, err := n.exec.Execute(ctx, "yt-dlp", args...); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}

	n.logger.Info(ctx, "Downloaded video to %s", target)
	return target, nil
}

// youtubeID extracts the video id for naming; falls back to "video".
func youtubeID(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return "video"
	}
	if id := u.Query().Get("v"); id != "" {
		return id
	}
	if id := strings.Trim(u.Path, "/"); id != "" {
		return filepath.Base(id)
	}
	return "video"
}

func (n *implNormalizer) downloadDirect(ctx context.Context, source string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %s", ErrDownload, resp.Status)
	}

	name := filepath.Base(strings.TrimSuffix(source, "/"))
	if u, err := url.Parse(source); err == nil && u.Path != "" {
		name = filepath.Base(u.Path)
	}
	if filepath.Ext(name) == "" {
		name += ".mp4"
	}
	target := n.alloc.Allocate(filepath.Join(n.videosDir, name))

	n.logger.Info(ctx, "Downloading video: %s -> %s", source, target)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("%w: %v", ErrDownload, err)
	}
	return target, nil
}
