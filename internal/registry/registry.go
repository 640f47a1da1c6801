// Package registry resolves stable string identifiers to process and
// blueprint factories. It replaces import-by-path loading with explicit
// registration at program initialization, keeping "load by name" ergonomics
// without reflection.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/athena-sanity/athena/internal/blueprint"
	"github.com/athena-sanity/athena/internal/process"
)

// Factory produces a fresh process instance. Each processor gets its own
// instance so pipelines never share per-run process state.
type Factory func() process.Process

// BlueprintFactory materializes a blueprint with freshly built processors.
type BlueprintFactory func() (*blueprint.Blueprint, error)

// NotFoundError reports an identifier with no registration.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nothing registered for %q", e.Identifier)
}

// ContractError reports a registration whose factory does not satisfy the
// process capability set.
type ContractError struct {
	Identifier string
	Reason     string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("registration %q does not satisfy the process contract: %s", e.Identifier, e.Reason)
}

// Registry maps qualified identifiers to factories. It is safe for
// concurrent resolution; registration is expected at initialization time.
type Registry struct {
	mu         sync.RWMutex
	processes  map[string]Factory
	blueprints map[string]BlueprintFactory
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		processes:  map[string]Factory{},
		blueprints: map[string]BlueprintFactory{},
	}
}

// RegisterProcess stores a process factory under identifier. Capability is
// verified structurally here, not at run time: the factory is invoked once
// and its product must implement Checker or Fixer. Violations fail with a
// *ContractError.
func (r *Registry) RegisterProcess(identifier string, factory Factory) error {
	if factory == nil {
		return &ContractError{Identifier: identifier, Reason: "factory is nil"}
	}
	probe := factory()
	if probe == nil {
		return &ContractError{Identifier: identifier, Reason: "factory returned nil"}
	}
	_, checkable := probe.(process.Checker)
	_, fixable := probe.(process.Fixer)
	if !checkable && !fixable {
		return &ContractError{Identifier: identifier, Reason: "process implements neither check nor fix"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.processes[identifier]; dup {
		return fmt.Errorf("process %q is already registered", identifier)
	}
	r.processes[identifier] = factory
	return nil
}

// ResolveProcess returns the factory registered under identifier, failing
// with a *NotFoundError when absent.
func (r *Registry) ResolveProcess(identifier string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.processes[identifier]
	if !ok {
		return nil, &NotFoundError{Identifier: identifier}
	}
	return factory, nil
}

// RegisterBlueprint stores a blueprint factory under identifier.
func (r *Registry) RegisterBlueprint(identifier string, factory BlueprintFactory) error {
	if factory == nil {
		return &ContractError{Identifier: identifier, Reason: "factory is nil"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.blueprints[identifier]; dup {
		return fmt.Errorf("blueprint %q is already registered", identifier)
	}
	r.blueprints[identifier] = factory
	return nil
}

// ResolveBlueprint returns the blueprint factory registered under
// identifier, failing with a *NotFoundError when absent.
func (r *Registry) ResolveBlueprint(identifier string) (BlueprintFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.blueprints[identifier]
	if !ok {
		return nil, &NotFoundError{Identifier: identifier}
	}
	return factory, nil
}

// ProcessIdentifiers returns the registered process identifiers, sorted.
func (r *Registry) ProcessIdentifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.processes))
	for id := range r.processes {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// BlueprintIdentifiers returns the registered blueprint identifiers, sorted.
func (r *Registry) BlueprintIdentifiers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.blueprints))
	for id := range r.blueprints {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear removes every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processes = map[string]Factory{}
	r.blueprints = map[string]BlueprintFactory{}
}
