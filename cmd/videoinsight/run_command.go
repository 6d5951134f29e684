package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/video-insight/internal/artifact"
	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/extractor"
	"github.com/nguyentantai21042004/video-insight/internal/loader"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/notes"
	"github.com/nguyentantai21042004/video-insight/internal/pipeline"
	"github.com/nguyentantai21042004/video-insight/internal/provider"
	"github.com/nguyentantai21042004/video-insight/internal/report"
	"github.com/nguyentantai21042004/video-insight/pkg/executor"
)

func newRunCommand(configFlag *string) *cobra.Command {
	var clean string

	cmd := &cobra.Command{
		Use:   "run [source]",
		Short: "Process one video through the full pipeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				cfg.VideoSource = args[0]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			switch clean {
			case "none":
			case "video":
				if err := cfg.Paths.Clean(pipeline.SourceStem(cfg.VideoSource)); err != nil {
					return err
				}
			case "all":
				if err := cfg.Paths.Clean(""); err != nil {
					return err
				}
			default:
				return fmt.Errorf("invalid --clean value %q (use none, video or all)", clean)
			}

			if err := cfg.Paths.EnsureDirs(); err != nil {
				return err
			}

			res, err := executeRun(cmd.Context(), cfg, cfg.VideoSource)
			if res != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.Render(res))
			}
			// A non-nil error means the run aborted; cobra maps it to a
			// non-zero exit code.
			return err
		},
	}

	cmd.Flags().StringVar(&clean, "clean", "none", "Purge prior outputs before running: none, video or all")
	return cmd
}

// executeRun wires the collaborators for one run and drives the
// orchestrator. Every run gets a fresh allocator, registry and run logger.
func executeRun(ctx context.Context, cfg *config.Config, source string) (*pipeline.Result, error) {
	run := pipeline.NewRunContext(source, cfg)

	runLog, err := logger.NewRun(cfg.Paths.Logs, run.Stem, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	defer runLog.Close()

	exec := executor.New()
	alloc := artifact.NewAllocator()

	transcribers, err := provider.BuildTranscribers(cfg, exec, runLog)
	if err != nil {
		return nil, err
	}
	generators, err := provider.BuildGenerators(cfg, runLog)
	if err != nil {
		return nil, err
	}

	// Derivative generators ride on the first configured summarization
	// backend.
	deriveGen := generators[cfg.Models.Summarization[0]]

	deps := pipeline.Deps{
		Loader:       loader.New(cfg.Paths.Videos, exec, alloc, runLog),
		Extractor:    extractor.New(cfg.Paths.Audio, exec, alloc, runLog),
		Transcribers: transcribers,
		Generators:   generators,
		Notes:        notes.NewNotes(cfg.Paths.Notes, cfg.Paths.FAQs, deriveGen, alloc, runLog),
		Mindmap:      notes.NewMindmap(cfg.Paths.Mindmaps, deriveGen, exec, alloc, runLog),
		Allocator:    alloc,
		Logger:       runLog,
	}

	return pipeline.New(cfg, deps).Run(ctx, run)
}
