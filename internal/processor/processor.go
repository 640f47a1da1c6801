// Package processor wraps one process instance for one pipeline slot and
// owns its execution lifecycle: the status state machine, the failure
// boundary around user check logic, and feedback/status resolution.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/athena-sanity/athena/internal/feedback"
	"github.com/athena-sanity/athena/internal/param"
	"github.com/athena-sanity/athena/internal/process"
	"github.com/athena-sanity/athena/internal/status"
)

// State tracks where a processor is in its run lifecycle. The terminal
// outcome itself lives in the processor's Status.
type State int

const (
	// Pending is the initial state; the processor has not run.
	Pending State = iota
	// Running means check or fix logic is currently executing.
	Running
	// Done means the processor reached a terminal status for this run.
	Done
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Tag modifies how the wrapper treats its process. The process itself is
// unaware of its tags.
type Tag uint8

const (
	// TagDisabled excludes the processor from pipeline runs.
	TagDisabled Tag = 1 << iota
	// TagNoCheck hides the process's check capability.
	TagNoCheck
	// TagNoFix hides the process's fix capability.
	TagNoFix
	// TagNonBlocking marks failures of this processor as advisory for
	// reporting and exit-code purposes.
	TagNonBlocking
)

// CapabilityError reports an operation invoked on a processor whose process
// does not provide it.
type CapabilityError struct {
	Processor  string
	Capability string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("processor %q does not support %s", e.Processor, e.Capability)
}

// ErrRunning is returned when an operation is requested while the processor
// is mid-run.
var ErrRunning = fmt.Errorf("processor is running")

// Processor executes exactly one process for one pipeline slot.
type Processor struct {
	name string
	proc process.Process
	tags Tag

	params    *param.Set
	container *feedback.Container

	state      State
	status     status.Status
	skipReason string
	duration   time.Duration
}

// Option configures a processor at construction time.
type Option func(*options)

type options struct {
	tags      Tag
	overrides map[string]any
}

// WithTags sets the processor's tags.
func WithTags(tags Tag) Option {
	return func(o *options) { o.tags = tags }
}

// WithOverrides applies parameter overrides on top of declared defaults.
// Invalid overrides fail construction, never execution.
func WithOverrides(overrides map[string]any) Option {
	return func(o *options) { o.overrides = overrides }
}

// New wraps proc for the slot identified by name. The process's declared
// parameters are instantiated here so overrides stay private to this
// processor.
func New(name string, proc process.Process, opts ...Option) (*Processor, error) {
	if proc == nil {
		return nil, fmt.Errorf("processor %q: process is nil", name)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	params, err := param.NewSet(proc.DeclareParameters())
	if err != nil {
		return nil, fmt.Errorf("processor %q: %w", name, err)
	}
	if len(o.overrides) > 0 {
		if err := params.Apply(o.overrides); err != nil {
			return nil, fmt.Errorf("processor %q: %w", name, err)
		}
	}

	return &Processor{
		name:      name,
		proc:      proc,
		tags:      o.tags,
		params:    params,
		container: &feedback.Container{},
		status:    status.Default,
	}, nil
}

// Name returns the slot name.
func (p *Processor) Name() string { return p.name }

// Status returns the processor's current status.
func (p *Processor) Status() status.Status { return p.status }

// State returns the lifecycle state.
func (p *Processor) State() State { return p.state }

// Duration returns the wall-clock time of the last check or fix invocation.
func (p *Processor) Duration() time.Duration { return p.duration }

// SkipReason returns why the processor was skipped, if it was.
func (p *Processor) SkipReason() string { return p.skipReason }

// Tags returns the processor's tags.
func (p *Processor) Tags() Tag { return p.tags }

// IsEnabled reports whether the processor participates in pipeline runs.
func (p *Processor) IsEnabled() bool { return p.tags&TagDisabled == 0 }

// IsNonBlocking reports whether failures of this processor are advisory.
func (p *Processor) IsNonBlocking() bool { return p.tags&TagNonBlocking != 0 }

// IsCheckable reports whether check can be invoked. Capability is structural
// (the process implements Checker) and can be masked by TagNoCheck.
func (p *Processor) IsCheckable() bool {
	if p.tags&TagNoCheck != 0 {
		return false
	}
	_, ok := p.proc.(process.Checker)
	return ok
}

// IsFixable reports whether fix can be invoked.
func (p *Processor) IsFixable() bool {
	if p.tags&TagNoFix != 0 {
		return false
	}
	_, ok := p.proc.(process.Fixer)
	return ok
}

// Parameters exposes the processor's parameter set for host introspection.
func (p *Processor) Parameters() *param.Set { return p.params }

// Feedback returns the recorded findings in order. Entries reported without
// an explicit status inherit the processor's resolved status.
func (p *Processor) Feedback() []feedback.Feedback {
	entries := p.container.Entries()
	for i := range entries {
		if !entries[i].Status.IsSeverity() && entries[i].Status != status.Skipped && entries[i].Status != status.Aborted {
			entries[i].Status = p.status
		}
	}
	return entries
}

// Check runs the wrapped process's check logic inside the failure boundary.
// A terminal processor is reset first; there is no accumulation across runs.
func (p *Processor) Check(ctx context.Context) error {
	if !p.IsCheckable() {
		return &CapabilityError{Processor: p.name, Capability: "check"}
	}
	checker := p.proc.(process.Checker)
	return p.invoke(ctx, "check", checker.Check)
}

// Fix runs the wrapped process's fix logic inside the failure boundary. It
// fails with a *CapabilityError when the process declares no fix.
func (p *Processor) Fix(ctx context.Context) error {
	if !p.IsFixable() {
		return &CapabilityError{Processor: p.name, Capability: "fix"}
	}
	fixer := p.proc.(process.Fixer)
	return p.invoke(ctx, "fix", fixer.Fix)
}

// invoke drives one lifecycle pass: Pending → Running → terminal. Any error
// or panic from the process is converted into a single Exception feedback
// entry; it never escapes the processor.
func (p *Processor) invoke(ctx context.Context, op string, fn func(context.Context, *process.Run) error) error {
	switch p.state {
	case Running:
		return ErrRunning
	case Done:
		p.Reset()
	}

	p.state = Running
	p.status = status.Default
	start := time.Now()

	run := process.NewRun(p.params, p.container)
	p.runContained(ctx, op, run, fn)

	p.duration = time.Since(start)
	p.container.Seal()
	p.state = Done

	slog.Debug("processor finished",
		"processor", p.name,
		"operation", op,
		"status", p.status.Name(),
		"findings", p.container.Len(),
		"duration", p.duration)
	return nil
}

func (p *Processor) runContained(ctx context.Context, op string, run *process.Run, fn func(context.Context, *process.Run) error) {
	defer func() {
		if r := recover(); r != nil {
			p.recordException(op, fmt.Sprintf("panic: %v", r))
		}
	}()

	if err := fn(ctx, run); err != nil {
		p.recordException(op, err.Error())
		return
	}

	if max, ok := p.container.MaxSeverity(); ok {
		p.status = max
	} else {
		p.status = status.Success
	}
}

func (p *Processor) recordException(op, detail string) {
	_ = p.container.Append(feedback.Feedback{
		Target:  p.name,
		Message: fmt.Sprintf("%s failed: %s", op, detail),
		Status:  status.Exception,
	})
	p.status = status.Exception
}

// MarkSkipped finalizes a pending processor as Skipped without invoking its
// process. Reachable only through pipeline link propagation.
func (p *Processor) MarkSkipped(reason string) error {
	if p.state != Pending {
		return fmt.Errorf("processor %q: cannot skip in state %s", p.name, p.state)
	}
	p.state = Done
	p.status = status.Skipped
	p.skipReason = reason
	p.container.Seal()
	return nil
}

// MarkAborted finalizes a pending processor as Aborted. No feedback is
// collected for an aborted processor.
func (p *Processor) MarkAborted() error {
	if p.state != Pending {
		return fmt.Errorf("processor %q: cannot abort in state %s", p.name, p.state)
	}
	p.state = Done
	p.status = status.Aborted
	p.container.Seal()
	return nil
}

// Reset returns the processor to Pending with a fresh, empty feedback
// container. Results from the prior run are discarded.
func (p *Processor) Reset() {
	p.state = Pending
	p.status = status.Default
	p.skipReason = ""
	p.duration = 0
	p.container = &feedback.Container{}
}
