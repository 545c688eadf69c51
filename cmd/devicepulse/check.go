package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/devicepulse"
	"github.com/jpalmerr/devicepulse/config"
)

// checkCmd runs one check over the configured device set and prints the
// resulting status map.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one status check and print the results",
	Long: `Run a single status check over the configured device set.

The admission policy comes from the config file and can be overridden with
--policy. Output is a table of device id and online status, ordered by
numeric id, or JSON with --json.

Exit codes:
  0 - Check completed (individual devices may still be offline)
  1 - Configuration error or the check was interrupted

Example:
  devicepulse check -c config.yaml
  devicepulse check -c config.yaml --policy sequential --json`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = checkCmd.MarkFlagRequired("config")
	checkCmd.Flags().String("policy", "", "override the configured admission policy")
	checkCmd.Flags().Bool("json", false, "print results as JSON")
	checkCmd.Flags().BoolP("verbose", "v", false, "log debug detail for every probe")
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := newLogger(level)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := config.BuildPolicy(cfg)
	if err != nil {
		return err
	}
	if override, _ := cmd.Flags().GetString("policy"); override != "" {
		policy, err = devicepulse.ParsePolicy(override)
		if err != nil {
			return err
		}
	}

	opts := append(config.BuildOptions(cfg), devicepulse.WithLogger(logger))
	chk, err := devicepulse.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}
	defer chk.Close()

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := chk.Check(ctx, policy, cfg.Devices)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(report)
	}
	printTable(report)
	return nil
}

// printJSON writes the report's ordered entries as a JSON array.
func printJSON(report *devicepulse.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report.Entries())
}

// printTable writes the report as an aligned two-column table, with the
// outcome noted for devices whose status could not be determined.
func printTable(report *devicepulse.Report) {
	fmt.Printf("%-20s %-8s\n", "DEVICE", "ONLINE")
	for _, res := range report.Results() {
		status := fmt.Sprintf("%t", res.Online)
		if res.Outcome == devicepulse.OutcomeIndeterminate {
			status += " (indeterminate)"
		}
		fmt.Printf("%-20s %-8s\n", res.DeviceID, status)
	}
}
