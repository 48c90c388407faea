package main

import (
	"github.com/spf13/cobra"

	"daily-weather-image/internal/common/logger"
)

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Run one report immediately and exit",
	Args:  cobra.NoArgs,
	RunE:  runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)
}

func runNow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(logger.OutputConsole)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.dailyTask(cmd.Context())
	if err != nil {
		return err
	}

	a.log.Info("Running report now", map[string]interface{}{"city": a.cfg.Report.City})
	task.Run(cmd.Context())
	return nil
}
