package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	version    string = "dev"
	commit     string = "unknown"
)

// rootCmd starts the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Real estate insights dashboard and chat assistant",
	Long: `Serves the real estate insights dashboard: query an area for its summary,
price trend and dataset, download the filtered CSV, and chat with the
assistant or upload a spreadsheet for the analytics backend.

Quick Start:
  insights                              # serve on :9090
  insights serve --port 8080            # serve on another port
  insights --backend http://localhost:8000/api`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overlays environment defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	addServeFlags(rootCmd)

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
