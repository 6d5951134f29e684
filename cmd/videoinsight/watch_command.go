package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/video-insight/internal/config"
	"github.com/nguyentantai21042004/video-insight/internal/logger"
	"github.com/nguyentantai21042004/video-insight/internal/watcher"
)

func newWatchCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input directory and run the pipeline for every new video",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			// Watch mode takes its sources from the input directory.
			if cfg.VideoSource == "" {
				cfg.VideoSource = "(watch)"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Paths.EnsureDirs(); err != nil {
				return err
			}

			log := logger.New(cfg.Logging.Level)

			handler := func(ctx context.Context, videoPath string) error {
				_, err := executeRun(ctx, cfg, videoPath)
				return err
			}

			w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
