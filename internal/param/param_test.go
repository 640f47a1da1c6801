package param

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewIntFailsFastOutsideBounds(t *testing.T) {
	tests := []struct {
		name string
		def  int64
		min  int64
		max  int64
		ok   bool
	}{
		{name: "in range", def: 5, min: 0, max: 10, ok: true},
		{name: "at lower bound", def: 0, min: 0, max: 10, ok: true},
		{name: "at upper bound", def: 10, min: 0, max: 10, ok: true},
		{name: "below minimum", def: -1, min: 0, max: 10, ok: false},
		{name: "above maximum", def: 11, min: 0, max: 10, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewInt("tolerance", tt.def, tt.min, tt.max)
			if tt.ok {
				require.NoError(t, err)
				require.Equal(t, tt.def, p.Default())
				return
			}
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			require.Equal(t, "tolerance", valErr.Parameter)
		})
	}
}

func TestNewFloatFailsFastOutsideBounds(t *testing.T) {
	_, err := NewFloat("threshold", 1.5, 0, 1)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Contains(t, valErr.Error(), "threshold")

	p, err := NewFloat("threshold", 0.5, 0, 1)
	require.NoError(t, err)
	require.NoError(t, p.Validate(1.0))
	require.Error(t, p.Validate(1.01))
}

func TestIntCoercion(t *testing.T) {
	p, err := NewInt("count", 1, 0, 100)
	require.NoError(t, err)

	for _, input := range []any{7, int64(7), "7", 7.0} {
		got, err := p.Coerce(input)
		require.NoError(t, err, "coerce %v (%T)", input, input)
		require.Equal(t, int64(7), got)
	}

	_, err = p.Coerce("not a number")
	require.Error(t, err)
}

func TestStringAllowedValues(t *testing.T) {
	_, err := NewString("mode", "bogus", WithAllowed("strict", "lenient"))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	p, err := NewString("mode", "strict", WithAllowed("strict", "lenient"))
	require.NoError(t, err)
	require.Error(t, p.Validate("STRICT"))

	ci, err := NewString("mode", "strict", WithAllowed("strict", "lenient"), WithCaseInsensitive())
	require.NoError(t, err)
	require.NoError(t, ci.Validate("STRICT"))
}

func TestSetAppliesOverrides(t *testing.T) {
	tolerance, err := NewInt("tolerance", 5, 0, 10)
	require.NoError(t, err)
	strict := NewBool("strict", false)

	set, err := NewSet([]Parameter{tolerance, strict})
	require.NoError(t, err)
	require.Equal(t, []string{"tolerance", "strict"}, set.Names())

	require.NoError(t, set.Apply(map[string]any{"tolerance": "8", "strict": true}))
	require.Equal(t, int64(8), set.Int("tolerance"))
	require.True(t, set.Bool("strict"))

	// Out-of-range override is rejected and leaves the prior value.
	err = set.Apply(map[string]any{"tolerance": 99})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Equal(t, int64(8), set.Int("tolerance"))

	// Unknown override names are rejected up front.
	require.Error(t, set.Apply(map[string]any{"nope": 1}))
}

func TestSetsDoNotShareState(t *testing.T) {
	tolerance, err := NewInt("tolerance", 5, 0, 10)
	require.NoError(t, err)
	decls := []Parameter{tolerance}

	a, err := NewSet(decls)
	require.NoError(t, err)
	b, err := NewSet(decls)
	require.NoError(t, err)

	require.NoError(t, a.Set("tolerance", 9))
	require.Equal(t, int64(9), a.Int("tolerance"))
	require.Equal(t, int64(5), b.Int("tolerance"))
}

func TestSetRejectsDuplicateDeclarations(t *testing.T) {
	a, err := NewInt("x", 0, 0, 1)
	require.NoError(t, err)
	b, err := NewInt("x", 1, 0, 1)
	require.NoError(t, err)

	_, err = NewSet([]Parameter{a, b})
	require.Error(t, err)
}
