// Package param provides typed, validated configuration values declared by
// check processes. Declarations carry defaults and constraints; a Set
// instantiates them per processor so per-run overrides never leak between
// processors sharing one process definition.
package param

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Parameter is a declared configuration value. Constructors validate the
// default eagerly, so a Parameter that exists is always internally
// consistent.
type Parameter interface {
	Name() string
	Default() any

	// Coerce converts a loosely typed value (e.g. from YAML) into the
	// parameter's native type.
	Coerce(value any) (any, error)

	// Validate reports whether a coerced value satisfies the constraint.
	Validate(value any) error
}

// ValidationError reports a value that violates a parameter's constraint.
type ValidationError struct {
	Parameter string
	Value     any
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q: value %v %s", e.Parameter, e.Value, e.Reason)
}

// coerceAs uses weakly typed decoding so YAML-ish inputs ("5", 5, 5.0) land
// in the declared native type.
func coerceAs[T any](name string, value any) (T, error) {
	var out T
	cfg := &mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return out, err
	}
	if err := dec.Decode(value); err != nil {
		return out, &ValidationError{Parameter: name, Value: value, Reason: fmt.Sprintf("cannot be coerced: %v", err)}
	}
	return out, nil
}

// Bool is a boolean parameter.
type Bool struct {
	name string
	def  bool
}

// NewBool declares a boolean parameter.
func NewBool(name string, def bool) *Bool {
	return &Bool{name: name, def: def}
}

func (p *Bool) Name() string { return p.name }
func (p *Bool) Default() any { return p.def }

func (p *Bool) Coerce(value any) (any, error) {
	v, err := coerceAs[bool](p.name, value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Bool) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return &ValidationError{Parameter: p.name, Value: value, Reason: "is not a bool"}
	}
	return nil
}

// Int is an integer parameter bounded by [Min, Max].
type Int struct {
	name     string
	def      int64
	min, max int64
}

// NewInt declares an integer parameter with inclusive bounds. It fails with a
// *ValidationError when the default is outside [min, max].
func NewInt(name string, def, min, max int64) (*Int, error) {
	p := &Int{name: name, def: def, min: min, max: max}
	if err := p.Validate(def); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Int) Name() string { return p.name }
func (p *Int) Default() any { return p.def }
func (p *Int) Min() int64   { return p.min }
func (p *Int) Max() int64   { return p.max }

func (p *Int) Coerce(value any) (any, error) {
	v, err := coerceAs[int64](p.name, value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Int) Validate(value any) error {
	v, ok := value.(int64)
	if !ok {
		return &ValidationError{Parameter: p.name, Value: value, Reason: "is not an integer"}
	}
	if v < p.min {
		return &ValidationError{Parameter: p.name, Value: v, Reason: fmt.Sprintf("is below minimum %d", p.min)}
	}
	if v > p.max {
		return &ValidationError{Parameter: p.name, Value: v, Reason: fmt.Sprintf("is above maximum %d", p.max)}
	}
	return nil
}

// Float is a floating point parameter bounded by [Min, Max].
type Float struct {
	name     string
	def      float64
	min, max float64
}

// NewFloat declares a float parameter with inclusive bounds. It fails with a
// *ValidationError when the default is outside [min, max].
func NewFloat(name string, def, min, max float64) (*Float, error) {
	p := &Float{name: name, def: def, min: min, max: max}
	if err := p.Validate(def); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Float) Name() string { return p.name }
func (p *Float) Default() any { return p.def }
func (p *Float) Min() float64 { return p.min }
func (p *Float) Max() float64 { return p.max }

func (p *Float) Coerce(value any) (any, error) {
	v, err := coerceAs[float64](p.name, value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *Float) Validate(value any) error {
	v, ok := value.(float64)
	if !ok {
		return &ValidationError{Parameter: p.name, Value: value, Reason: "is not a number"}
	}
	if v < p.min {
		return &ValidationError{Parameter: p.name, Value: v, Reason: fmt.Sprintf("is below minimum %v", p.min)}
	}
	if v > p.max {
		return &ValidationError{Parameter: p.name, Value: v, Reason: fmt.Sprintf("is above maximum %v", p.max)}
	}
	return nil
}

// String is a string parameter, optionally restricted to an allowed set.
type String struct {
	name          string
	def           string
	allowed       []string
	caseSensitive bool
}

// StringOption configures a String parameter.
type StringOption func(*String)

// WithAllowed restricts the parameter to the given values.
func WithAllowed(values ...string) StringOption {
	return func(p *String) { p.allowed = values }
}

// WithCaseInsensitive makes allowed-value matching ignore case.
func WithCaseInsensitive() StringOption {
	return func(p *String) { p.caseSensitive = false }
}

// NewString declares a string parameter. It fails with a *ValidationError
// when the default is not among the allowed values.
func NewString(name, def string, opts ...StringOption) (*String, error) {
	p := &String{name: name, def: def, caseSensitive: true}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Validate(def); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *String) Name() string { return p.name }
func (p *String) Default() any { return p.def }

func (p *String) Coerce(value any) (any, error) {
	v, err := coerceAs[string](p.name, value)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *String) Validate(value any) error {
	v, ok := value.(string)
	if !ok {
		return &ValidationError{Parameter: p.name, Value: value, Reason: "is not a string"}
	}
	if len(p.allowed) == 0 {
		return nil
	}
	for _, a := range p.allowed {
		if p.caseSensitive {
			if v == a {
				return nil
			}
		} else if strings.EqualFold(v, a) {
			return nil
		}
	}
	return &ValidationError{Parameter: p.name, Value: v, Reason: fmt.Sprintf("is not one of %v", p.allowed)}
}
