package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/provider"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

const mindmapPrompt = `Extract the key concepts of this video summary and their
relationships as a Graphviz DOT graph. Output ONLY the DOT source, starting
with "graph" or "digraph". Use short node labels (at most four words) and
rankdir=LR.

Summary:
---
%s
---`

type implMindmap struct {
	mindmapDir string
	gen        provider.Generator
	exec       executor.Executor
	alloc      *artifact.Allocator
	logger     logger.Logger
}

// NewMindmap creates a MindmapGenerator that asks the generation model for
// a DOT graph and renders it to PNG with graphviz.
func NewMindmap(mindmapDir string, gen provider.Generator, exec executor.Executor, alloc *artifact.Allocator, log logger.Logger) MindmapGenerator {
	return &implMindmap{
		mindmapDir: mindmapDir,
		gen:        gen,
		exec:       exec,
		alloc:      alloc,
		logger:     log,
	}
}

func (m *implMindmap) GenerateMindmap(ctx context.Context, summaryPath string) (string, error) {
	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		return "", fmt.Errorf("read summary: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(summaryPath), filepath.Ext(summaryPath))

	raw, err := m.gen.Generate(ctx, fmt.Sprintf(mindmapPrompt, summary))
	if err != nil {
		return "", fmt.Errorf("generate mindmap graph: %w", err)
	}
	dot := extractDOT(raw)
	if dot == "" {
		return "", fmt.Errorf("model returned no DOT graph")
	}

	tmp, err := os.CreateTemp("", "mindmap-*.dot")
	if err != nil {
		return "", fmt.Errorf("create dot file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(dot); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write dot file: %w", err)
	}
	tmp.Close()

	imagePath := m.alloc.Allocate(filepath.Join(m.mindmapDir, stem+"_mindmap.png"))
	if _, err := m.exec.Execute(ctx, "dot", "-Tpng", "-o", imagePath, tmp.Name()); err != nil {
		return "", fmt.Errorf("render mindmap: %w", err)
	}

	m.logger.Info(ctx, "Mind map written: %s", imagePath)
	return imagePath, nil
}

// extractDOT pulls the DOT source out of the model response, tolerating a
// surrounding markdown code fence.
func extractDOT(raw string) string {
	text := strings.TrimSpace(raw)
	if idx := strings.Index(text, "```"); idx >= 0 {
		text = text[idx+3:]
		text = strings.TrimPrefix(text, "dot")
		if end := strings.Index(text, "```"); end >= 0 {
			text = text[:end]
		}
	}
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "graph") || strings.HasPrefix(text, "digraph") {
		return text
	}
	return ""
}
