// Package reporting turns a finished blueprint run into consumable outputs:
// a structured report model, a terminal table, JUnit XML and JSON archives.
package reporting

import (
	"time"

	"github.com/athena-sanity/athena/internal/blueprint"
	"github.com/athena-sanity/athena/internal/status"
)

// FeedbackEntry is one finding in serialized form.
type FeedbackEntry struct {
	Target  string `json:"target,omitempty"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ProcessorReport is the serialized outcome of one processor.
type ProcessorReport struct {
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	NonBlocking bool            `json:"non_blocking,omitempty"`
	SkipReason  string          `json:"skip_reason,omitempty"`
	DurationMs  int64           `json:"duration_ms"`
	Feedback    []FeedbackEntry `json:"feedback,omitempty"`
}

// Digest aggregates terminal statuses across one run. Skipped and Aborted
// are counted apart from Exception: deliberate non-execution is not an
// error.
type Digest struct {
	Total     int `json:"total"`
	Success   int `json:"success"`
	Warning   int `json:"warning"`
	Error     int `json:"error"`
	Exception int `json:"exception"`
	Skipped   int `json:"skipped"`
	Aborted   int `json:"aborted"`
	Other     int `json:"other,omitempty"`
}

// Report is the complete serialized outcome of one blueprint run.
type Report struct {
	Blueprint  string            `json:"blueprint"`
	Timestamp  time.Time         `json:"timestamp"`
	DurationMs int64             `json:"duration_ms"`
	Digest     Digest            `json:"summary"`
	Processors []ProcessorReport `json:"processors"`
}

// Failed reports whether any blocking processor ended in a fail status.
func (r *Report) Failed() bool {
	for _, pr := range r.Processors {
		if pr.NonBlocking {
			continue
		}
		if st, ok := status.ByName(pr.Status); ok && st.IsFail() {
			return true
		}
	}
	return false
}

// Build snapshots the current run state of bp into a report.
func Build(bp *blueprint.Blueprint) *Report {
	report := &Report{
		Blueprint: bp.Name(),
		Timestamp: time.Now().UTC(),
	}

	var total time.Duration
	for _, proc := range bp.Processors() {
		st := proc.Status()
		pr := ProcessorReport{
			Name:        proc.Name(),
			Status:      st.Name(),
			NonBlocking: proc.IsNonBlocking(),
			SkipReason:  proc.SkipReason(),
			DurationMs:  proc.Duration().Milliseconds(),
		}
		for _, fb := range proc.Feedback() {
			pr.Feedback = append(pr.Feedback, FeedbackEntry{
				Target:  fb.Target,
				Message: fb.Message,
				Status:  fb.Status.Name(),
			})
		}
		report.Processors = append(report.Processors, pr)
		total += proc.Duration()

		report.Digest.Total++
		switch st {
		case status.Success:
			report.Digest.Success++
		case status.Warning:
			report.Digest.Warning++
		case status.Error:
			report.Digest.Error++
		case status.Exception:
			report.Digest.Exception++
		case status.Skipped:
			report.Digest.Skipped++
		case status.Aborted:
			report.Digest.Aborted++
		default:
			report.Digest.Other++
		}
	}
	report.DurationMs = total.Milliseconds()
	return report
}
