package param

import "fmt"

// Set holds the per-processor instantiation of a process's declared
// parameters. Declaration order is preserved for introspection; values start
// at the declared defaults.
type Set struct {
	order  []string
	decls  map[string]Parameter
	values map[string]any
}

// NewSet instantiates the given declarations. Duplicate names fail with a
// *ValidationError.
func NewSet(decls []Parameter) (*Set, error) {
	s := &Set{
		decls:  make(map[string]Parameter, len(decls)),
		values: make(map[string]any, len(decls)),
	}
	for _, d := range decls {
		if _, exists := s.decls[d.Name()]; exists {
			return nil, &ValidationError{Parameter: d.Name(), Value: nil, Reason: "is declared twice"}
		}
		s.order = append(s.order, d.Name())
		s.decls[d.Name()] = d
		s.values[d.Name()] = d.Default()
	}
	return s, nil
}

// Names returns parameter names in declaration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Declaration returns the declared parameter for name.
func (s *Set) Declaration(name string) (Parameter, bool) {
	d, ok := s.decls[name]
	return d, ok
}

// Set coerces and validates value, then stores it.
func (s *Set) Set(name string, value any) error {
	d, ok := s.decls[name]
	if !ok {
		return fmt.Errorf("unknown parameter %q", name)
	}
	coerced, err := d.Coerce(value)
	if err != nil {
		return err
	}
	if err := d.Validate(coerced); err != nil {
		return err
	}
	s.values[name] = coerced
	return nil
}

// Apply sets every override, failing on the first invalid one. Iteration
// follows declaration order so failures are deterministic.
func (s *Set) Apply(overrides map[string]any) error {
	for name := range overrides {
		if _, ok := s.decls[name]; !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
	}
	for _, name := range s.order {
		value, ok := overrides[name]
		if !ok {
			continue
		}
		if err := s.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the current value for name.
func (s *Set) Get(name string) (any, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Bool returns the current value of a Bool parameter, or false if absent or
// of another type.
func (s *Set) Bool(name string) bool {
	v, _ := s.values[name].(bool)
	return v
}

// Int returns the current value of an Int parameter, or 0 if absent or of
// another type.
func (s *Set) Int(name string) int64 {
	v, _ := s.values[name].(int64)
	return v
}

// Float returns the current value of a Float parameter, or 0 if absent or of
// another type.
func (s *Set) Float(name string) float64 {
	v, _ := s.values[name].(float64)
	return v
}

// String returns the current value of a String parameter, or "" if absent or
// of another type.
func (s *Set) String(name string) string {
	v, _ := s.values[name].(string)
	return v
}
