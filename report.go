package devicepulse

import (
	"sort"
	"strconv"

	"github.com/jpalmerr/devicepulse/internal/probe"
)

// Entry is one (device id, online) pair in a [Report].
type Entry struct {
	// DeviceID is the identifier supplied by the caller.
	DeviceID string `json:"device_id"`

	// Online is the boolean status for the device.
	Online bool `json:"online"`
}

// Report is the assembled result of one check run.
//
// A Report is total with respect to its input: exactly one entry per input
// identifier, no duplicates, no omissions, regardless of how many probes
// failed. It is immutable once returned; accessors return copies.
//
// Entries are ordered ascending by numeric id, with non-numeric ids sorted
// lexicographically after all numeric ones. Every admission policy produces
// the same ordering.
type Report struct {
	runID   string
	entries []Entry
	results map[string]CheckResult
}

// RunID returns the correlation id for this check run.
//
// The same id appears in all log records the run produced, allowing a
// report to be matched to its diagnostics.
func (r *Report) RunID() string {
	return r.runID
}

// Len returns the number of devices in the report.
func (r *Report) Len() int {
	return len(r.entries)
}

// Online reports the boolean status for id. The second return value is
// false if id was not part of the run's input.
func (r *Report) Online(id string) (online, ok bool) {
	res, ok := r.results[id]
	return res.Online, ok
}

// Entries returns the ordered (id, online) pairs.
//
// The returned slice is a copy; modifying it does not affect the report.
func (r *Report) Entries() []Entry {
	cp := make([]Entry, len(r.entries))
	copy(cp, r.entries)
	return cp
}

// Map returns the status map keyed by device id.
//
// The returned map is a copy. Note that Go map iteration is unordered; use
// [Report.Entries] where the sorted order matters.
func (r *Report) Map() map[string]bool {
	m := make(map[string]bool, len(r.entries))
	for _, e := range r.entries {
		m[e.DeviceID] = e.Online
	}
	return m
}

// Result returns the full [CheckResult] for id, including the three-valued
// outcome and diagnostics the boolean view discards. The second return
// value is false if id was not part of the run's input.
func (r *Report) Result(id string) (CheckResult, bool) {
	res, ok := r.results[id]
	return res, ok
}

// Results returns the full check results in report order.
//
// The returned slice is a copy.
func (r *Report) Results() []CheckResult {
	out := make([]CheckResult, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, r.results[e.DeviceID])
	}
	return out
}

// assemble builds a sorted [Report] from raw probe results.
func assemble(runID string, results []probe.Result) *Report {
	report := &Report{
		runID:   runID,
		entries: make([]Entry, 0, len(results)),
		results: make(map[string]CheckResult, len(results)),
	}

	for _, res := range results {
		report.entries = append(report.entries, Entry{DeviceID: res.DeviceID, Online: res.Online})
		report.results[res.DeviceID] = CheckResult{
			DeviceID:   res.DeviceID,
			Online:     res.Online,
			Outcome:    Outcome(res.Outcome),
			StatusCode: res.StatusCode,
			Latency:    res.Latency,
			CheckedAt:  res.CheckedAt,
			Err:        res.Err,
		}
	}

	sort.SliceStable(report.entries, func(i, j int) bool {
		return idLess(report.entries[i].DeviceID, report.entries[j].DeviceID)
	})

	return report
}

// idLess orders device ids ascending by numeric value. Ids that do not
// parse as integers sort after all numeric ids, lexicographically among
// themselves, so the ordering is deterministic for every input.
func idLess(a, b string) bool {
	na, aNum := parseID(a)
	nb, bNum := parseID(b)

	switch {
	case aNum && bNum:
		if na != nb {
			return na < nb
		}
		return a < b // "01" vs "1"
	case aNum:
		return true
	case bNum:
		return false
	default:
		return a < b
	}
}

func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}
