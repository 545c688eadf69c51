// Command example demonstrates using devicepulse as an SDK against the
// bundled mock backend.
//
// Run the backend first:
//
//	go run ./cmd/devicepulse mock --port 9000 --token secret
//
// Then run this example:
//
//	go run ./example
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/devicepulse"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	chk, err := devicepulse.New(
		devicepulse.WithBaseURL("http://localhost:9000/limited"),
		devicepulse.WithToken("secret"),
		devicepulse.WithTimeout(10*time.Second),
		devicepulse.WithLogger(logger),
		devicepulse.WithStatusCallback(func(res devicepulse.CheckResult) {
			if res.Outcome == devicepulse.OutcomeIndeterminate {
				logger.Warn("could not determine status", "device", res.DeviceID)
			}
		}),
	)
	if err != nil {
		logger.Error("failed to create checker", "error", err)
		os.Exit(1)
	}
	defer chk.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ids := []string{"10", "11", "12", "13", "14", "15", "16", "17", "18", "19"}

	report, err := chk.CheckWindowed(ctx, ids)
	if err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("run %s:\n", report.RunID())
	for _, e := range report.Entries() {
		fmt.Printf("  device %-4s online=%t\n", e.DeviceID, e.Online)
	}
}
