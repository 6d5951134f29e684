// Package notes generates derivative artifacts (structured notes, FAQs,
// mind maps) from summary files. The pipeline treats these as opaque
// collaborators; only their success/failure contract matters to the run.
package notes

import "context"

// NotesGenerator produces structured notes and an FAQ document from one
// summary artifact.
type NotesGenerator interface {
	GenerateNotes(ctx context.Context, summaryPath string) (notesPath, faqPath string, err error)
}

// MindmapGenerator renders a mind map image from one summary artifact.
type MindmapGenerator interface {
	GenerateMindmap(ctx context.Context, summaryPath string) (imagePath string, err error)
}
