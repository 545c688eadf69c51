// Package main is the entry point for the devicepulse CLI.
//
// devicepulse can be used either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	devicepulse check -c config.yaml     # Run one check and print the results
//	devicepulse watch -c config.yaml     # Re-check at an interval, print transitions
//	devicepulse validate -c config.yaml  # Validate configuration
//	devicepulse mock                     # Run the reference mock backend
//	devicepulse version                  # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newLogger creates a JSON logger for CLI use.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "devicepulse",
	Short: "Check whether sets of devices are online",
	Long: `devicepulse resolves the online status of a set of devices by querying
a remote status endpoint once per device, under a configurable admission
policy (sequential, parallel, batched, or windowed).

Quick start:
  1. Create a config file (devicepulse.yaml)
  2. Run: devicepulse check -c devicepulse.yaml

Example config:
  base_url: https://status.example.com/limited
  token: ${STATUS_TOKEN}
  policy: windowed
  devices: ["10", "11", "12"]`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this devicepulse binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devicepulse %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
