// Package process defines the contract user-authored checks implement. A
// process declares its parameters and implements Checker, Fixer, or both;
// capability presence is structural and introspectable without running
// anything.
//
// Processes never run themselves. The processor package is the only
// sanctioned execution path: it owns exception containment and status
// resolution, and it is the only producer of Run values.
package process

import (
	"context"

	"github.com/athena-sanity/athena/internal/feedback"
	"github.com/athena-sanity/athena/internal/param"
	"github.com/athena-sanity/athena/internal/status"
)

// Process is the base capability every check definition provides.
type Process interface {
	// DeclareParameters returns the parameters this process exposes, in
	// the order they should be presented. Declarations are shared;
	// per-processor values are instantiated from them.
	DeclareParameters() []param.Parameter
}

// Checker is implemented by processes that can inspect state. Check must be
// read-only with respect to the inspected state and report findings through
// the Run.
type Checker interface {
	Process
	Check(ctx context.Context, run *Run) error
}

// Fixer is implemented by processes that can remediate the findings their
// check reports.
type Fixer interface {
	Process
	Fix(ctx context.Context, run *Run) error
}

// Run is the per-invocation handle a process uses to read its parameters and
// report findings. Runs are created by the owning processor for exactly one
// check or fix invocation.
type Run struct {
	params    *param.Set
	container *feedback.Container
}

// NewRun binds a parameter set and a feedback container for one invocation.
// Reserved for the processor package and tests.
func NewRun(params *param.Set, container *feedback.Container) *Run {
	return &Run{params: params, container: container}
}

// Report records a finding with an explicit status.
func (r *Run) Report(target, message string, st status.Status) {
	// Appending after the run completed means the process leaked the Run
	// out of its invocation; the entry is dropped.
	_ = r.container.Append(feedback.Feedback{Target: target, Message: message, Status: st})
}

// Fail records a finding at Error severity.
func (r *Run) Fail(target, message string) {
	r.Report(target, message, status.Error)
}

// Warn records a finding at Warning severity.
func (r *Run) Warn(target, message string) {
	r.Report(target, message, status.Warning)
}

// Bool returns the current value of a declared bool parameter.
func (r *Run) Bool(name string) bool { return r.params.Bool(name) }

// Int returns the current value of a declared int parameter.
func (r *Run) Int(name string) int64 { return r.params.Int(name) }

// Float returns the current value of a declared float parameter.
func (r *Run) Float(name string) float64 { return r.params.Float(name) }

// String returns the current value of a declared string parameter.
func (r *Run) String(name string) string { return r.params.String(name) }
