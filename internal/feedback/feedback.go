// Package feedback carries the structured findings a check reports about the
// state it inspects.
package feedback

import (
	"errors"
	"fmt"

	"github.com/athena-sanity/athena/internal/status"
)

// Feedback is one reported finding: the inspected target, a human-readable
// message, and an associated status. A zero Status means "use the owning
// processor's resolved status".
type Feedback struct {
	Target  string
	Message string
	Status  status.Status
}

func (f Feedback) String() string {
	if f.Target == "" {
		return f.Message
	}
	return fmt.Sprintf("%s: %s", f.Target, f.Message)
}

// ErrSealed is returned when appending to a container whose run completed.
var ErrSealed = errors.New("feedback container is sealed")

// Container is the append-only, ordered sequence of findings for one
// processor run. It becomes immutable once the run completes.
type Container struct {
	entries []Feedback
	sealed  bool
}

// Append records a finding. It fails with ErrSealed after the owning run has
// completed.
func (c *Container) Append(fb Feedback) error {
	if c.sealed {
		return ErrSealed
	}
	c.entries = append(c.entries, fb)
	return nil
}

// Seal freezes the container. Called by the owning processor when its run
// completes.
func (c *Container) Seal() { c.sealed = true }

// Sealed reports whether the container is frozen.
func (c *Container) Sealed() bool { return c.sealed }

// Len returns the number of recorded findings.
func (c *Container) Len() int { return len(c.entries) }

// Entries returns the findings in recorded order. The slice is a copy; the
// container itself stays immutable once sealed.
func (c *Container) Entries() []Feedback {
	out := make([]Feedback, len(c.entries))
	copy(out, c.entries)
	return out
}

// MaxSeverity returns the most severe status among the recorded findings.
// Entries without a severity status are ignored; ok is false when no entry
// bears severity.
func (c *Container) MaxSeverity() (status.Status, bool) {
	var (
		max   status.Status
		found bool
	)
	for _, fb := range c.entries {
		if !fb.Status.IsSeverity() {
			continue
		}
		if !found || status.Less(max, fb.Status) {
			max = fb.Status
			found = true
		}
	}
	return max, found
}
