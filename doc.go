// Package devicepulse resolves the online status of sets of devices by
// querying a remote status endpoint once per device.
//
// The interesting part of the problem is not the query itself but the
// admission policy: how many status requests may be outstanding at once.
// devicepulse ships one entry point per policy, each written for a known,
// fixed backend contract:
//
//   - [Checker.CheckSequential]: one request at a time, for backends that
//     reject any concurrent request
//   - [Checker.CheckParallel]: unbounded fan-out, for backends with uniform
//     latency regardless of load
//   - [Checker.CheckBatched]: fixed cohorts of 5, draining each cohort
//     before the next
//   - [Checker.CheckWindowed]: a sliding pool of 5, refilling each slot the
//     moment it frees - the preferred policy for capped backends
//
// # Quick Start
//
//	chk, _ := devicepulse.New(
//	    devicepulse.WithBaseURL("https://status.example.com/limited"),
//	    devicepulse.WithToken(os.Getenv("STATUS_TOKEN")),
//	)
//	defer chk.Close()
//
//	report, err := chk.CheckWindowed(ctx, []string{"10", "11", "12"})
//	if err != nil {
//	    return err // only context cancellation lands here
//	}
//	for _, e := range report.Entries() {
//	    fmt.Println(e.DeviceID, e.Online)
//	}
//
// # Results
//
// Every entry point returns a total [Report]: exactly one entry per input
// id, ordered ascending by numeric id. Failures never propagate as errors;
// a device whose query failed in any way (transport error, rate-limit
// rejection, malformed body) is reported as offline. Callers who need to
// distinguish "confirmed offline" from "could not determine" can read the
// three-valued [Outcome] on each [CheckResult] via [Report.Result] or a
// [WithStatusCallback] hook - the boolean map is a deliberately lossy view.
//
// # Watching
//
// [Watcher] re-runs a check at a fixed interval and emits every completed
// [CheckResult] on a channel, for callers tracking status over time:
//
//	w := devicepulse.NewWatcher(chk, ids, devicepulse.PolicyWindowed, 30*time.Second)
//	w.Start(ctx)
//	defer w.Stop()
//	for res := range w.Results() {
//	    ...
//	}
//
// # Architecture
//
// The package is a thin public surface over internal packages:
//
//   - internal/probe: the single-device status query, where all errors stop
//   - internal/dispatch: the four admission coordinators
//   - internal/track: latest-status store with pub/sub, used by the CLI
//   - internal/mockapi: a reference backend simulating the three contracts
//
// The cmd/devicepulse CLI drives the same SDK from a YAML config file.
package devicepulse
