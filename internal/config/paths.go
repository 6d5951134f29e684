package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (p *PathsConfig) applyDefaults() {
	def := func(field *string, value string) {
		if *field == "" {
			*field = value
		}
	}
	def(&p.Input, "data/input")
	def(&p.Videos, "data/videos")
	def(&p.Audio, "data/audios")
	def(&p.Transcripts, "data/outputs/transcripts")
	def(&p.Summaries, "data/outputs/summaries")
	def(&p.Notes, "data/outputs/notes")
	def(&p.FAQs, "data/outputs/faqs")
	def(&p.Mindmaps, "data/outputs/mindmaps")
	def(&p.Logs, "data/outputs/logs")
}

// OutputDirs lists the directories holding per-run artifacts, the ones
// affected by --clean.
func (p PathsConfig) OutputDirs() []string {
	return []string{
		p.Audio,
		p.Transcripts,
		p.Summaries,
		p.Notes,
		p.FAQs,
		p.Mindmaps,
	}
}

// EnsureDirs creates every configured directory that does not exist yet.
func (p PathsConfig) EnsureDirs() error {
	dirs := append(p.OutputDirs(), p.Input, p.Videos, p.Logs)
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Clean removes prior output files. With a stem it removes only files
// belonging to that video; with an empty stem it empties the output
// directories entirely.
func (p PathsConfig) Clean(stem string) error {
	for _, dir := range p.OutputDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if stem != "" && !strings.HasPrefix(entry.Name(), stem) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				return fmt.Errorf("remove %s: %w", entry.Name(), err)
			}
		}
	}
	return nil
}
