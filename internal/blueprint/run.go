package blueprint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/athena-sanity/athena/internal/status"
)

// EventType identifies a progress event emitted during a run.
type EventType string

const (
	EventRunStart          EventType = "run_start"
	EventRunComplete       EventType = "run_complete"
	EventProcessorStart    EventType = "processor_start"
	EventProcessorComplete EventType = "processor_complete"
	EventProcessorSkipped  EventType = "processor_skipped"
	EventProcessorAborted  EventType = "processor_aborted"
	EventFixStart          EventType = "fix_start"
	EventFixComplete       EventType = "fix_complete"
)

// ProgressEvent is a progress update delivered to listeners.
type ProgressEvent struct {
	Type      EventType
	Blueprint string
	Processor string
	Index     int
	Total     int
	Status    status.Status
	Reason    string
}

// ProgressListener receives progress updates during Run and RunFixes.
type ProgressListener func(event ProgressEvent)

// OnProgress registers a progress listener.
func (b *Blueprint) OnProgress(listener ProgressListener) {
	b.progressMu.Lock()
	defer b.progressMu.Unlock()
	b.listeners = append(b.listeners, listener)
}

func (b *Blueprint) notifyProgress(event ProgressEvent) {
	b.progressMu.Lock()
	listeners := make([]ProgressListener, len(b.listeners))
	copy(listeners, b.listeners)
	b.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes the pipeline in resolved order: one deterministic, strictly
// sequential pass. For each processor the incoming links are evaluated
// against the already-finalized statuses of their sources; an unsatisfied
// link skips the processor without invoking its process, and that skip feeds
// into downstream link evaluation like any other terminal status.
//
// Cancellation (context or Abort) is cooperative and observed only between
// processors. Run never fails because a check failed; it only returns an
// error when the pipeline could not be driven at all.
func (b *Blueprint) Run(ctx context.Context) error {
	total := len(b.slots)
	b.abortMu.Lock()
	b.aborted = false
	b.abortMu.Unlock()

	for _, sl := range b.slots {
		sl.proc.Reset()
	}

	slog.Info("blueprint run starting", "blueprint", b.name, "processors", total)
	b.notifyProgress(ProgressEvent{Type: EventRunStart, Blueprint: b.name, Total: total})

	for i, sl := range b.slots {
		if err := ctx.Err(); err != nil || b.abortRequested() {
			if err := sl.proc.MarkAborted(); err != nil {
				return err
			}
			b.notifyProgress(ProgressEvent{
				Type: EventProcessorAborted, Blueprint: b.name,
				Processor: sl.name, Index: i, Total: total,
				Status: status.Aborted,
			})
			continue
		}

		if reason, skip := b.shouldSkip(sl); skip {
			if err := sl.proc.MarkSkipped(reason); err != nil {
				return err
			}
			b.notifyProgress(ProgressEvent{
				Type: EventProcessorSkipped, Blueprint: b.name,
				Processor: sl.name, Index: i, Total: total,
				Status: status.Skipped, Reason: reason,
			})
			continue
		}

		b.notifyProgress(ProgressEvent{
			Type: EventProcessorStart, Blueprint: b.name,
			Processor: sl.name, Index: i, Total: total,
		})

		if err := sl.proc.Check(ctx); err != nil {
			// Capability errors cannot happen here: shouldSkip elides
			// non-checkable slots. Anything else is a lifecycle bug.
			return fmt.Errorf("blueprint %q: running %q: %w", b.name, sl.name, err)
		}

		b.notifyProgress(ProgressEvent{
			Type: EventProcessorComplete, Blueprint: b.name,
			Processor: sl.name, Index: i, Total: total,
			Status: sl.proc.Status(),
		})
	}

	b.notifyProgress(ProgressEvent{Type: EventRunComplete, Blueprint: b.name, Total: total})
	slog.Info("blueprint run finished", "blueprint", b.name)
	return nil
}

// shouldSkip reports whether the slot must be skipped instead of executed,
// with a human-readable reason.
func (b *Blueprint) shouldSkip(sl *slot) (string, bool) {
	if !sl.proc.IsEnabled() {
		return "processor is disabled", true
	}
	if !sl.proc.IsCheckable() {
		return "process declares no check operation", true
	}
	for _, link := range sl.links {
		src := b.byName[link.From]
		st := src.proc.Status()
		if !link.allows(st) {
			return fmt.Sprintf("requires %q to end in %s, got %s", link.From, statusNames(link.Allowed), st), true
		}
	}
	return "", false
}

func statusNames(statuses []status.Status) string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.Name()
	}
	return fmt.Sprintf("%v", names)
}

// RunFixes performs the remediation pass: every fixable processor whose check
// ended in a fail status gets its fix invoked, followed by a fresh check so
// the reported status reflects the remediated state. Run must have completed
// first.
func (b *Blueprint) RunFixes(ctx context.Context) error {
	total := len(b.slots)
	for i, sl := range b.slots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if b.abortRequested() {
			return nil
		}
		if !sl.proc.Status().IsFail() || !sl.proc.IsFixable() {
			continue
		}

		b.notifyProgress(ProgressEvent{
			Type: EventFixStart, Blueprint: b.name,
			Processor: sl.name, Index: i, Total: total,
		})

		if err := sl.proc.Fix(ctx); err != nil {
			return fmt.Errorf("blueprint %q: fixing %q: %w", b.name, sl.name, err)
		}
		if sl.proc.Status() != status.Exception && sl.proc.IsCheckable() {
			if err := sl.proc.Check(ctx); err != nil {
				return err
			}
		}

		b.notifyProgress(ProgressEvent{
			Type: EventFixComplete, Blueprint: b.name,
			Processor: sl.name, Index: i, Total: total,
			Status: sl.proc.Status(),
		})
	}
	return nil
}
