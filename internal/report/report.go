// Package report renders a run outcome for the terminal, so a caller can
// see at a glance which combinations produced artifacts and which were
// skipped and why.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nguyentantai21042004/video-insight/internal/pipeline"
)

// Render returns a table of every registered artifact and every skipped
// combination, followed by a one-line verdict.
func Render(res *pipeline.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Stage", "Combination", "Status", "Detail"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, entry := range res.Artifacts.Entries() {
		stage, label := splitKey(entry.Key)
		tw.AppendRow(table.Row{stage, label, "ok", entry.Path})
	}
	for _, skip := range res.Skipped {
		tw.AppendRow(table.Row{string(skip.Stage), skip.Combination.Label(), "skipped", skip.Reason})
	}

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	b.WriteString(verdict(res))
	b.WriteString("\n")
	return b.String()
}

func verdict(res *pipeline.Result) string {
	switch {
	case res.State == pipeline.StateAborted:
		return fmt.Sprintf("Run %s ABORTED at %s: %s", res.Run.ID, res.LastStage, res.Reason)
	case res.FullyCovered():
		return fmt.Sprintf("Run %s completed: all %d combinations succeeded", res.Run.ID, res.Artifacts.Len())
	default:
		return fmt.Sprintf("Run %s completed with partial coverage: %d artifacts, %d combinations skipped",
			res.Run.ID, res.Artifacts.Len(), len(res.Skipped))
	}
}

func splitKey(key string) (stage, label string) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], strings.ReplaceAll(parts[1], "/", " × ")
}
