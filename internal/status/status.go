// Package status defines the severity and outcome classification for check
// runs. Severity-bearing statuses form a total order (Success < Warning <
// Error < Exception); Skipped and Aborted are out-of-band markers that record
// deliberate non-execution and never participate in severity comparison.
package status

import "fmt"

// Color is an RGB triplet intended for UI consumers.
type Color struct {
	R, G, B uint8
}

// Status is an immutable outcome classification. The zero value is not a
// valid status; use one of the package-level values or Register.
type Status struct {
	name     string
	rank     int
	severity bool
	color    Color
}

// Built-in severity ranks are spaced so user statuses can register between
// them.
const (
	rankSuccess   = 100
	rankWarning   = 200
	rankError     = 300
	rankException = 400
)

var (
	// Default is the initial status of every processor before it runs.
	Default = Status{name: "Default", color: Color{60, 60, 60}}

	// Success is the terminal status of a check that reported no findings.
	Success = Status{name: "Success", rank: rankSuccess, severity: true, color: Color{0, 128, 0}}

	// Warning marks findings that deserve attention but are not failures.
	Warning = Status{name: "Warning", rank: rankWarning, severity: true, color: Color{196, 98, 16}}

	// Error marks a failed check.
	Error = Status{name: "Error", rank: rankError, severity: true, color: Color{150, 0, 0}}

	// Exception is forced by the processor when check logic itself fails.
	Exception = Status{name: "Exception", rank: rankException, severity: true, color: Color{125, 125, 125}}

	// Skipped marks a processor whose execution was elided by link
	// propagation. It is not an error and not comparable by severity.
	Skipped = Status{name: "Skipped", color: Color{85, 85, 85}}

	// Aborted marks a processor cancelled before it ran.
	Aborted = Status{name: "Aborted", color: Color{100, 100, 100}}
)

// Name returns the display name of the status.
func (s Status) Name() string { return s.name }

// Color returns the display color of the status.
func (s Status) Color() Color { return s.color }

// IsSeverity reports whether the status participates in severity ordering.
func (s Status) IsSeverity() bool { return s.severity }

// IsFail reports whether the status is a severity status at Warning level or
// above.
func (s Status) IsFail() bool { return s.severity && s.rank >= rankWarning }

// Rank returns the severity rank, or 0 for non-severity statuses.
func (s Status) Rank() int {
	if !s.severity {
		return 0
	}
	return s.rank
}

func (s Status) String() string { return s.name }

// Less reports whether s is strictly less severe than other. It is always
// false when either side is not a severity status, so Skipped, Aborted and
// Default never order against anything.
func Less(s, other Status) bool {
	if !s.severity || !other.severity {
		return false
	}
	return s.rank < other.rank
}

// Max returns the more severe of a and b. Non-severity statuses are ignored;
// if neither side bears severity, ok is false.
func Max(a, b Status) (Status, bool) {
	switch {
	case a.severity && b.severity:
		if a.rank >= b.rank {
			return a, true
		}
		return b, true
	case a.severity:
		return a, true
	case b.severity:
		return b, true
	default:
		return Status{}, false
	}
}

// ByName looks up a status (built-in or registered) by its display name.
func ByName(name string) (Status, bool) {
	for _, s := range All() {
		if s.name == name {
			return s, true
		}
	}
	return Status{}, false
}

// RegistrationError reports a conflicting user status registration.
type RegistrationError struct {
	Name     string
	Rank     int
	Conflict string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("status %q (rank %d) conflicts with existing status %q", e.Name, e.Rank, e.Conflict)
}
