// Package definition loads blueprint definition files: the YAML surface that
// names processor slots, their process identifiers, parameter overrides and
// inter-slot links, and materializes runnable blueprints from a registry.
package definition

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/athena-sanity/athena/internal/blueprint"
	"github.com/athena-sanity/athena/internal/processor"
	"github.com/athena-sanity/athena/internal/registry"
	"github.com/athena-sanity/athena/internal/status"
)

// Definition is one parsed blueprint document.
type Definition struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Processors  []ProcessorDef `yaml:"processors"`
}

// ProcessorDef describes one slot: which process fills it and under which
// conditions it runs.
type ProcessorDef struct {
	Name        string         `yaml:"name"`
	Process     string         `yaml:"process"`
	Enabled     *bool          `yaml:"enabled,omitempty"`
	NonBlocking bool           `yaml:"nonBlocking,omitempty"`
	Config      map[string]any `yaml:"config,omitempty"`
	Links       []LinkDef      `yaml:"links,omitempty"`
}

// LinkDef is one dependency edge: this slot runs only when the source slot
// ended in one of the required statuses.
type LinkDef struct {
	From     string   `yaml:"from"`
	Requires []string `yaml:"requires"`
}

// Load reads, schema-validates and parses a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}
	return Parse(data)
}

// Parse schema-validates and decodes a definition document.
func Parse(data []byte) (*Definition, error) {
	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid blueprint definition: %s", errs[0])
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing definition: %w", err)
	}
	return &def, nil
}

// Build materializes the definition into a runnable blueprint, resolving
// each slot's process identifier through reg. Resolution failures, unknown
// status names and invalid overrides surface here, before anything runs.
func (d *Definition) Build(reg *registry.Registry) (*blueprint.Blueprint, error) {
	slots := make([]blueprint.Slot, 0, len(d.Processors))
	for _, pd := range d.Processors {
		factory, err := reg.ResolveProcess(pd.Process)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", pd.Name, err)
		}

		var tags processor.Tag
		if pd.Enabled != nil && !*pd.Enabled {
			tags |= processor.TagDisabled
		}
		if pd.NonBlocking {
			tags |= processor.TagNonBlocking
		}

		proc, err := processor.New(pd.Name, factory(),
			processor.WithTags(tags),
			processor.WithOverrides(pd.Config))
		if err != nil {
			return nil, err
		}

		links := make([]blueprint.Link, 0, len(pd.Links))
		for _, ld := range pd.Links {
			allowed := make([]status.Status, 0, len(ld.Requires))
			for _, name := range ld.Requires {
				st, ok := status.ByName(name)
				if !ok {
					return nil, fmt.Errorf("slot %q: link from %q requires unknown status %q", pd.Name, ld.From, name)
				}
				allowed = append(allowed, st)
			}
			links = append(links, blueprint.Link{From: ld.From, Allowed: allowed})
		}

		slots = append(slots, blueprint.Slot{Name: pd.Name, Processor: proc, Links: links})
	}

	return blueprint.New(d.Name, slots)
}

// Register stores the definition in reg as a blueprint factory, so each
// resolution builds fresh processor instances.
func (d *Definition) Register(reg *registry.Registry) error {
	return reg.RegisterBlueprint(d.Name, func() (*blueprint.Blueprint, error) {
		return d.Build(reg)
	})
}
