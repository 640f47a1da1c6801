package feedback

import (
	"testing"

	"github.com/athena-sanity/athena/internal/status"
	"github.com/stretchr/testify/require"
)

func TestAppendPreservesOrder(t *testing.T) {
	var c Container
	require.NoError(t, c.Append(Feedback{Target: "a", Message: "first"}))
	require.NoError(t, c.Append(Feedback{Target: "b", Message: "second"}))
	require.NoError(t, c.Append(Feedback{Target: "c", Message: "third"}))

	entries := c.Entries()
	require.Len(t, entries, 3)
	require.Equal(t, "a", entries[0].Target)
	require.Equal(t, "b", entries[1].Target)
	require.Equal(t, "c", entries[2].Target)
}

func TestSealedContainerRejectsAppend(t *testing.T) {
	var c Container
	require.NoError(t, c.Append(Feedback{Message: "before"}))

	c.Seal()
	require.True(t, c.Sealed())
	require.ErrorIs(t, c.Append(Feedback{Message: "after"}), ErrSealed)
	require.Equal(t, 1, c.Len())
}

func TestMaxSeverity(t *testing.T) {
	var c Container
	_, ok := c.MaxSeverity()
	require.False(t, ok)

	require.NoError(t, c.Append(Feedback{Message: "info"})) // no status
	require.NoError(t, c.Append(Feedback{Message: "warn", Status: status.Warning}))
	require.NoError(t, c.Append(Feedback{Message: "fail", Status: status.Error}))
	require.NoError(t, c.Append(Feedback{Message: "warn again", Status: status.Warning}))

	max, ok := c.MaxSeverity()
	require.True(t, ok)
	require.Equal(t, status.Error, max)
}

func TestEntriesReturnsCopy(t *testing.T) {
	var c Container
	require.NoError(t, c.Append(Feedback{Target: "a"}))

	entries := c.Entries()
	entries[0].Target = "mutated"
	require.Equal(t, "a", c.Entries()[0].Target)
}
