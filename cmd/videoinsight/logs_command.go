package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/video-insight/internal/logview"
)

func newLogsCommand() *cobra.Command {
	var (
		logsDir    string
		runName    string
		errorsOnly bool
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List run logs, or dump one with --run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runName == "" {
				logs, err := logview.List(logsDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), logview.Table(logs))
				return nil
			}

			lines, err := logview.Read(filepath.Join(logsDir, runName), errorsOnly, filter)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&logsDir, "dir", "data/outputs/logs", "Logs directory")
	cmd.Flags().StringVar(&runName, "run", "", "Log file name to dump")
	cmd.Flags().BoolVar(&errorsOnly, "errors-only", false, "Show only error lines")
	cmd.Flags().StringVar(&filter, "filter", "", "Show only lines containing this text")
	return cmd
}
