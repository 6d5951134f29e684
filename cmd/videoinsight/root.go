package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "videoinsight",
		Short:         "Video summarization pipeline",
		Long:          "Pipelines a video through loading, audio extraction, transcription, summarization and derivative generation across multiple models.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "config.yaml", "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))
	rootCmd.AddCommand(newWatchCommand(&configFlag))
	rootCmd.AddCommand(newLogsCommand())

	return rootCmd
}
