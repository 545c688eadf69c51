package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/devicepulse/internal/mockapi"
)

// mockCmd runs the reference status backend for local testing.
var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run the reference mock status backend",
	Long: `Run a local mock status backend that simulates the three backend
contracts the admission policies are written against:

  GET /serial/{id}    one request at a time; concurrent requests get 429
  GET /parallel/{id}  unbounded concurrency, fixed 10s delay per request
  GET /limited/{id}   up to 5 concurrent with a 1-3s delay; more get 429

All endpoints require the shared-secret bearer token and answer from a
static id -> online table with a JSON boolean body.

Example:
  devicepulse mock --port 9000 --token secret`,
	RunE: runMock,
}

func init() {
	rootCmd.AddCommand(mockCmd)

	mockCmd.Flags().Int("port", 9000, "port to listen on")
	mockCmd.Flags().String("token", "secret", "shared-secret bearer token")
}

func runMock(cmd *cobra.Command, args []string) error {
	logger := newLogger(slog.LevelInfo)

	port, _ := cmd.Flags().GetInt("port")
	token, _ := cmd.Flags().GetString("token")

	backend := mockapi.NewBackend(mockapi.Config{
		Token:  token,
		Table:  mockapi.DefaultTable(),
		Logger: logger,
	})

	addr := fmt.Sprintf(":%d", port)
	logger.Info("mock backend listening",
		"addr", addr,
		"routes", "/serial/{id} /parallel/{id} /limited/{id}",
	)

	if err := http.ListenAndServe(addr, backend.Handler()); err != nil {
		return fmt.Errorf("mock backend failed: %w", err)
	}
	return nil
}
