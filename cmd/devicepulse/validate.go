package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/devicepulse/config"
)

// validateCmd validates a config file without running a check.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a devicepulse configuration file without contacting the backend.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  devicepulse validate -c config.yaml
  devicepulse validate --config /etc/devicepulse/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Base URL: %s\n", cfg.BaseURL)
	fmt.Printf("  Policy:   %s\n", cfg.Policy)
	fmt.Printf("  Timeout:  %s\n", cfg.Timeout.Duration())
	fmt.Printf("  Devices:  %d\n", len(cfg.Devices))

	return nil
}
