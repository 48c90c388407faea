// Package main is the entry point of the daily weather image report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logOutput  string
)

var rootCmd = &cobra.Command{
	Use:   "weather-report",
	Short: "Daily illustrated weather report",
	Long: `Generates a crochet-style weather illustration for a city once a day and emails it.

With no subcommand the process stays up and fires every day at SCHEDULE_TIME.`,
	Args:          cobra.NoArgs,
	RunE:          runDaily,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (environment values override it)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "", "console or file (defaults: file for the daily loop, console otherwise)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
