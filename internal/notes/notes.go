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
)

const notesPrompt = `You are turning a video summary into structured study notes.
Write concise markdown notes with:
- a short title heading
- one section per major topic, in the order the summary presents them
- bullet points stating facts, definitions and steps, bold for key terms

Summary:
---
%s
---`

const faqPrompt = `You are preparing a FAQ from a video summary.
Write 5 to 8 question/answer pairs in markdown. Use "### Q: <question>"
headings followed by a short answer paragraph. Only ask questions the
summary actually answers.

Summary:
---
%s
---`

type implNotes struct {
	notesDir string
	faqDir   string
	gen      provider.Generator
	alloc    *artifact.Allocator
	logger   logger.Logger
}

// NewNotes creates a NotesGenerator writing <stem>_notes.md and
// <stem>_faqs.md, plus a .docx rendering of the notes.
func NewNotes(notesDir, faqDir string, gen provider.Generator, alloc *artifact.Allocator, log logger.Logger) NotesGenerator {
	return &implNotes{
		notesDir: notesDir,
		faqDir:   faqDir,
		gen:      gen,
		alloc:    alloc,
		logger:   log,
	}
}

func (n *implNotes) GenerateNotes(ctx context.Context, summaryPath string) (string, string, error) {
	summary, err := os.ReadFile(summaryPath)
	if err != nil {
		return "", "", fmt.Errorf("read summary: %w", err)
	}
	stem := strings.TrimSuffix(filepath.Base(summaryPath), filepath.Ext(summaryPath))

	notesText, err := n.gen.Generate(ctx, fmt.Sprintf(notesPrompt, summary))
	if err != nil {
		return "", "", fmt.Errorf("generate notes: %w", err)
	}
	faqText, err := n.gen.Generate(ctx, fmt.Sprintf(faqPrompt, summary))
	if err != nil {
		return "", "", fmt.Errorf("generate faq: %w", err)
	}

	notesPath := n.alloc.Allocate(filepath.Join(n.notesDir, stem+"_notes.md"))
	if err := os.WriteFile(notesPath, []byte(notesText), 0644); err != nil {
		return "", "", fmt.Errorf("write notes: %w", err)
	}

	faqPath := n.alloc.Allocate(filepath.Join(n.faqDir, stem+"_faqs.md"))
	if err := os.WriteFile(faqPath, []byte(faqText), 0644); err != nil {
		return "", "", fmt.Errorf("write faq: %w", err)
	}

	// The .docx export is a convenience copy; its failure never fails the
	// combination.
	docxPath := n.alloc.Allocate(filepath.Join(n.notesDir, stem+"_notes.docx"))
	if err := markdownToDocx(stem, notesText, docxPath); err != nil {
		n.logger.Warn(ctx, "Failed to export notes as docx: %v", err)
	}

	n.logger.Info(ctx, "Notes written: %s, FAQ: %s", notesPath, faqPath)
	return notesPath, faqPath, nil
}
