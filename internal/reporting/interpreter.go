package reporting

import (
	"fmt"
	"strings"
	"time"
)

// InterpretHealth returns a plain-language label for the ratio of healthy
// processors (Success or Warning) to those that ran.
func InterpretHealth(ratio float64) string {
	pct := ratio * 100
	switch {
	case pct >= 100:
		return "Healthy (all checks passed)"
	case pct >= 80:
		return fmt.Sprintf("Mostly healthy (%.0f%% of checks passed)", pct)
	case pct >= 50:
		return fmt.Sprintf("Degraded (%.0f%% of checks passed)", pct)
	default:
		return fmt.Sprintf("Broken (%.0f%% of checks passed)", pct)
	}
}

// InterpretProcessor explains one processor outcome in plain language.
func InterpretProcessor(pr ProcessorReport) string {
	switch pr.Status {
	case "Success":
		return "passed"
	case "Warning":
		return fmt.Sprintf("passed with %d warning(s)", len(pr.Feedback))
	case "Error":
		if pr.NonBlocking {
			return fmt.Sprintf("failed with %d finding(s), advisory only", len(pr.Feedback))
		}
		return fmt.Sprintf("failed with %d finding(s)", len(pr.Feedback))
	case "Exception":
		return "could not run to completion; the check itself raised an error"
	case "Skipped":
		if pr.SkipReason != "" {
			return fmt.Sprintf("did not run: %s", pr.SkipReason)
		}
		return "did not run"
	case "Aborted":
		return "cancelled before it ran"
	default:
		return fmt.Sprintf("ended as %s", pr.Status)
	}
}

// FormatInterpretation produces a full plain-language reading of a report.
func FormatInterpretation(report *Report) string {
	var b strings.Builder

	d := report.Digest
	duration := time.Duration(report.DurationMs) * time.Millisecond

	b.WriteString("=== Interpretation ===\n\n")

	executed := d.Total - d.Skipped - d.Aborted
	if executed > 0 {
		healthy := d.Success + d.Warning
		b.WriteString(fmt.Sprintf("Overall: %s\n", InterpretHealth(float64(healthy)/float64(executed))))
	} else {
		b.WriteString("Overall: nothing ran\n")
	}
	b.WriteString(fmt.Sprintf("Duration: %v\n", duration))
	b.WriteString(fmt.Sprintf("Checks: %d total, %d succeeded, %d warned, %d failed, %d raised, %d skipped, %d aborted\n",
		d.Total, d.Success, d.Warning, d.Error, d.Exception, d.Skipped, d.Aborted))

	if d.Exception > 0 {
		b.WriteString("\nAt least one check raised instead of reporting findings. That usually\nmeans a bug in the check or a broken environment, not bad content.\n")
	}
	if d.Skipped > 0 {
		b.WriteString("\nSkipped checks were held back by their dependencies; fix the upstream\nfailures and re-run to exercise them.\n")
	}

	if len(report.Processors) > 0 {
		b.WriteString("\nPer-Check Interpretation:\n")
		for _, pr := range report.Processors {
			icon := "✓"
			switch pr.Status {
			case "Error", "Exception":
				icon = "✗"
			case "Skipped", "Aborted":
				icon = "-"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %s\n", icon, pr.Name, InterpretProcessor(pr)))
			for _, fb := range pr.Feedback {
				if fb.Target != "" {
					b.WriteString(fmt.Sprintf("      %s: %s\n", fb.Target, fb.Message))
				}
			}
		}
	}

	return b.String()
}
