package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	ordered := []Status{Success, Warning, Error, Exception}

	for i := 0; i < len(ordered); i++ {
		for j := 0; j < len(ordered); j++ {
			got := Less(ordered[i], ordered[j])
			require.Equal(t, i < j, got, "Less(%s, %s)", ordered[i], ordered[j])
		}
	}

	// Transitivity across the whole chain.
	require.True(t, Less(Success, Warning))
	require.True(t, Less(Warning, Error))
	require.True(t, Less(Success, Error))
	require.True(t, Less(Error, Exception))
	require.True(t, Less(Success, Exception))
}

func TestMarkersNeverCompare(t *testing.T) {
	for _, marker := range []Status{Skipped, Aborted, Default} {
		for _, sev := range []Status{Success, Warning, Error, Exception} {
			require.False(t, Less(marker, sev), "%s < %s", marker, sev)
			require.False(t, Less(sev, marker), "%s < %s", sev, marker)
		}
	}
}

func TestMax(t *testing.T) {
	got, ok := Max(Warning, Error)
	require.True(t, ok)
	require.Equal(t, Error, got)

	got, ok = Max(Exception, Success)
	require.True(t, ok)
	require.Equal(t, Exception, got)

	// Markers are ignored on either side.
	got, ok = Max(Skipped, Warning)
	require.True(t, ok)
	require.Equal(t, Warning, got)

	_, ok = Max(Skipped, Aborted)
	require.False(t, ok)
}

func TestRegisterExtension(t *testing.T) {
	t.Cleanup(ResetExtensions)

	critical, err := Register("Critical", 350, Color{200, 0, 0})
	require.NoError(t, err)
	require.True(t, critical.IsSeverity())
	require.True(t, Less(Error, critical))
	require.True(t, Less(critical, Exception))

	found, ok := ByName("Critical")
	require.True(t, ok)
	require.Equal(t, critical, found)
}

func TestRegisterConflicts(t *testing.T) {
	t.Cleanup(ResetExtensions)

	_, err := Register("Critical", 350, Color{})
	require.NoError(t, err)

	tests := []struct {
		desc string
		name string
		rank int
	}{
		{desc: "rank collides with built-in", name: "Nitpick", rank: 200},
		{desc: "name collides with built-in", name: "Warning", rank: 150},
		{desc: "rank collides with extension", name: "Severe", rank: 350},
		{desc: "name collides with extension", name: "Critical", rank: 360},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, err := Register(tt.name, tt.rank, Color{})
			var regErr *RegistrationError
			require.ErrorAs(t, err, &regErr)
		})
	}
}

func TestByNameBuiltins(t *testing.T) {
	for _, s := range []Status{Default, Success, Warning, Error, Exception, Skipped, Aborted} {
		found, ok := ByName(s.Name())
		require.True(t, ok)
		require.Equal(t, s, found)
	}
	_, ok := ByName("NoSuchStatus")
	require.False(t, ok)
}

func TestIsFail(t *testing.T) {
	require.False(t, Success.IsFail())
	require.True(t, Warning.IsFail())
	require.True(t, Error.IsFail())
	require.True(t, Exception.IsFail())
	require.False(t, Skipped.IsFail())
	require.False(t, Aborted.IsFail())
}
