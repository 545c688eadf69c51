package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/devicepulse"
	"github.com/jpalmerr/devicepulse/config"
	"github.com/jpalmerr/devicepulse/internal/track"
)

// watchCmd re-checks the device set at the configured interval and prints
// status transitions as they happen.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check devices at an interval and print transitions",
	Long: `Continuously re-check the configured device set.

Each device is checked immediately, then once per watch_interval. A line is
printed whenever a device is first seen or its online status changes.

The command runs until interrupted (Ctrl+C) or it receives SIGTERM.

Example:
  devicepulse watch -c config.yaml`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger(slog.LevelWarn)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	policy, err := config.BuildPolicy(cfg)
	if err != nil {
		return err
	}

	opts := append(config.BuildOptions(cfg), devicepulse.WithLogger(logger))
	chk, err := devicepulse.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create checker: %w", err)
	}
	defer chk.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := devicepulse.NewWatcher(chk, cfg.Devices, policy, cfg.WatchInterval.Duration())
	tracker := track.NewTracker()

	fmt.Printf("watching %d devices every %s (policy: %s)\n",
		len(cfg.Devices), cfg.WatchInterval.Duration(), policy)

	watcher.Start(ctx)
	defer watcher.Stop()

	for res := range watcher.Results() {
		prev, seen := tracker.Latest(res.DeviceID)
		tracker.Update(res)

		if !seen {
			fmt.Printf("%s  device %s: %s\n",
				res.CheckedAt.Format("15:04:05"), res.DeviceID, res.Outcome)
			continue
		}
		if prev.Online != res.Online {
			fmt.Printf("%s  device %s: %s -> %s\n",
				res.CheckedAt.Format("15:04:05"), res.DeviceID, prev.Outcome, res.Outcome)
		}
	}

	return nil
}
