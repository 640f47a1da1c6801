// Package blueprint groups processors into a named pipeline with dependency
// links, resolves a deterministic execution order, and propagates skip and
// abort outcomes through the link graph.
package blueprint

import (
	"fmt"
	"strings"
	"sync"

	"github.com/athena-sanity/athena/internal/processor"
	"github.com/athena-sanity/athena/internal/status"
)

// Link declares that a slot only runs when the source slot's terminal status
// is among the allowed set. Skipped and Aborted sources satisfy a link only
// when listed explicitly; they never satisfy a severity requirement.
type Link struct {
	From    string
	Allowed []status.Status
}

func (l Link) allows(st status.Status) bool {
	for _, a := range l.Allowed {
		if a.Name() == st.Name() {
			return true
		}
	}
	return false
}

// Slot is one named position in a pipeline: a processor plus its incoming
// links.
type Slot struct {
	Name      string
	Processor *processor.Processor
	Links     []Link
}

// CycleError reports a cyclic link graph detected at construction.
type CycleError struct {
	Slots []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("blueprint links form a cycle involving: %s", strings.Join(e.Slots, ", "))
}

// UnknownSlotError reports a reference to a slot name that does not exist.
type UnknownSlotError struct {
	Name string
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("unknown slot %q", e.Name)
}

type slot struct {
	name  string
	proc  *processor.Processor
	links []Link
}

// Blueprint is a named, ordered pipeline of processors. Construction
// finalizes the execution order; Run performs a single deterministic pass.
type Blueprint struct {
	name   string
	slots  []*slot // resolved execution order
	byName map[string]*slot

	abortMu    sync.Mutex
	aborted    bool
	progressMu sync.Mutex
	listeners  []ProgressListener
}

// New builds a blueprint over the given slots. The execution order is a
// topological order of the link graph; among slots whose dependencies are
// satisfied, declaration order wins. Cyclic links fail with a *CycleError,
// links to absent slots with an *UnknownSlotError.
func New(name string, slots []Slot) (*Blueprint, error) {
	byName := make(map[string]*slot, len(slots))
	all := make([]*slot, 0, len(slots))
	for _, s := range slots {
		if s.Processor == nil {
			return nil, fmt.Errorf("slot %q has no processor", s.Name)
		}
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate slot %q", s.Name)
		}
		sl := &slot{name: s.Name, proc: s.Processor, links: s.Links}
		byName[s.Name] = sl
		all = append(all, sl)
	}

	for _, sl := range all {
		for _, link := range sl.links {
			if _, ok := byName[link.From]; !ok {
				return nil, &UnknownSlotError{Name: link.From}
			}
			if link.From == sl.name {
				return nil, &CycleError{Slots: []string{sl.name}}
			}
		}
	}

	order, err := resolveOrder(all)
	if err != nil {
		return nil, err
	}

	return &Blueprint{name: name, slots: order, byName: byName}, nil
}

// resolveOrder runs Kahn's algorithm, always picking the earliest-declared
// slot among those whose dependencies are resolved. This makes the order a
// stable function of the declaration.
func resolveOrder(all []*slot) ([]*slot, error) {
	indegree := make(map[string]int, len(all))
	dependents := make(map[string][]string, len(all))
	index := make(map[string]int, len(all))
	for i, sl := range all {
		index[sl.name] = i
		indegree[sl.name] += 0
		for _, link := range sl.links {
			indegree[sl.name]++
			dependents[link.From] = append(dependents[link.From], sl.name)
		}
	}

	byName := make(map[string]*slot, len(all))
	for _, sl := range all {
		byName[sl.name] = sl
	}

	order := make([]*slot, 0, len(all))
	done := make(map[string]bool, len(all))
	for len(order) < len(all) {
		next := -1
		for i, sl := range all {
			if done[sl.name] || indegree[sl.name] > 0 {
				continue
			}
			next = i
			break
		}
		if next == -1 {
			var remaining []string
			for _, sl := range all {
				if !done[sl.name] {
					remaining = append(remaining, sl.name)
				}
			}
			return nil, &CycleError{Slots: remaining}
		}

		picked := all[next]
		done[picked.name] = true
		order = append(order, picked)
		for _, dep := range dependents[picked.name] {
			indegree[dep]--
		}
	}
	return order, nil
}

// Name returns the blueprint's name.
func (b *Blueprint) Name() string { return b.name }

// Processors returns the processors in resolved execution order. The slice
// reflects the current run state; it does not trigger a run.
func (b *Blueprint) Processors() []*processor.Processor {
	out := make([]*processor.Processor, len(b.slots))
	for i, sl := range b.slots {
		out[i] = sl.proc
	}
	return out
}

// ProcessorByName returns the processor for the given slot name in O(1). It
// fails with an *UnknownSlotError for unknown names.
func (b *Blueprint) ProcessorByName(name string) (*processor.Processor, error) {
	sl, ok := b.byName[name]
	if !ok {
		return nil, &UnknownSlotError{Name: name}
	}
	return sl.proc, nil
}

// Abort requests cooperative cancellation. It takes effect at the next
// processor boundary: the processor running when Abort is called completes
// normally, every later one ends Aborted.
func (b *Blueprint) Abort() {
	b.abortMu.Lock()
	b.aborted = true
	b.abortMu.Unlock()
}

func (b *Blueprint) abortRequested() bool {
	b.abortMu.Lock()
	defer b.abortMu.Unlock()
	return b.aborted
}
