package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretHealth(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"all passed", 1.0, "Healthy (all checks passed)"},
		{"mostly", 0.85, "Mostly healthy (85% of checks passed)"},
		{"degraded", 0.6, "Degraded (60% of checks passed)"},
		{"broken", 0.2, "Broken (20% of checks passed)"},
		{"nothing passed", 0.0, "Broken (0% of checks passed)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretHealth(tt.ratio))
		})
	}
}

func TestInterpretProcessor(t *testing.T) {
	tests := []struct {
		name string
		pr   ProcessorReport
		want string
	}{
		{"success", ProcessorReport{Status: "Success"}, "passed"},
		{"warning", ProcessorReport{Status: "Warning", Feedback: make([]FeedbackEntry, 2)}, "passed with 2 warning(s)"},
		{"error", ProcessorReport{Status: "Error", Feedback: make([]FeedbackEntry, 3)}, "failed with 3 finding(s)"},
		{"advisory error", ProcessorReport{Status: "Error", NonBlocking: true, Feedback: make([]FeedbackEntry, 1)}, "failed with 1 finding(s), advisory only"},
		{"exception", ProcessorReport{Status: "Exception"}, "could not run to completion; the check itself raised an error"},
		{"skipped with reason", ProcessorReport{Status: "Skipped", SkipReason: "disabled"}, "did not run: disabled"},
		{"skipped", ProcessorReport{Status: "Skipped"}, "did not run"},
		{"aborted", ProcessorReport{Status: "Aborted"}, "cancelled before it ran"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterpretProcessor(tt.pr))
		})
	}
}

func TestFormatInterpretation(t *testing.T) {
	report := &Report{
		Blueprint:  "sceneSanity",
		DurationMs: 120,
		Digest: Digest{
			Total: 4, Success: 1, Error: 1, Exception: 1, Skipped: 1,
		},
		Processors: []ProcessorReport{
			{Name: "loader", Status: "Success"},
			{Name: "mesh", Status: "Error", Feedback: []FeedbackEntry{
				{Target: "pCube1", Message: "non-manifold geometry", Status: "Error"},
			}},
			{Name: "textures", Status: "Exception"},
			{Name: "uvs", Status: "Skipped", SkipReason: "requires mesh in [Success]"},
		},
	}

	out := FormatInterpretation(report)

	assert.Contains(t, out, "=== Interpretation ===")
	assert.Contains(t, out, "Broken (33% of checks passed)")
	assert.Contains(t, out, "✓ loader: passed")
	assert.Contains(t, out, "✗ mesh: failed with 1 finding(s)")
	assert.Contains(t, out, "pCube1: non-manifold geometry")
	assert.Contains(t, out, "- uvs: did not run: requires mesh in [Success]")
	assert.Contains(t, out, "check itself raised an error")
	assert.Contains(t, out, "held back by their dependencies")
}

func TestFormatInterpretationNothingRan(t *testing.T) {
	report := &Report{
		Blueprint: "empty",
		Digest:    Digest{Total: 2, Skipped: 2},
	}
	assert.Contains(t, FormatInterpretation(report), "nothing ran")
}
