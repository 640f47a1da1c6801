package builtin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/athena-sanity/athena/internal/processor"
	"github.com/athena-sanity/athena/internal/registry"
	"github.com/athena-sanity/athena/internal/status"
	"github.com/stretchr/testify/require"
)

func TestRegisterAll(t *testing.T) {
	reg := registry.New()
	require.NoError(t, RegisterAll(reg))
	require.Equal(t, []string{
		"builtin.fileSizeOver",
		"builtin.globCount",
		"builtin.pathExists",
	}, reg.ProcessIdentifiers())
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()

	p, err := processor.New("exists", &PathExists{},
		processor.WithOverrides(map[string]any{"path": dir}))
	require.NoError(t, err)
	require.NoError(t, p.Check(context.Background()))
	require.Equal(t, status.Success, p.Status())

	missing, err := processor.New("missing", &PathExists{},
		processor.WithOverrides(map[string]any{"path": filepath.Join(dir, "nope")}))
	require.NoError(t, err)
	require.NoError(t, missing.Check(context.Background()))
	require.Equal(t, status.Error, missing.Status())
	require.Len(t, missing.Feedback(), 1)
}

func TestGlobCount(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ma", "b.ma"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	tests := []struct {
		name string
		min  int64
		max  int64
		want status.Status
	}{
		{name: "in bounds", min: 1, max: 5, want: status.Success},
		{name: "too few", min: 3, max: 5, want: status.Error},
		{name: "too many", min: 0, max: 1, want: status.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := processor.New("glob", &GlobCount{}, processor.WithOverrides(map[string]any{
				"pattern": filepath.Join(dir, "*.ma"),
				"min":     tt.min,
				"max":     tt.max,
			}))
			require.NoError(t, err)
			require.NoError(t, p.Check(context.Background()))
			require.Equal(t, tt.want, p.Status())
		})
	}
}

func TestFileSizeCeilingCheckAndFix(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.bin")
	small := filepath.Join(dir, "small.bin")
	require.NoError(t, os.WriteFile(big, make([]byte, 2048), 0o644))
	require.NoError(t, os.WriteFile(small, make([]byte, 16), 0o644))

	overrides := map[string]any{
		"pattern":  filepath.Join(dir, "*.bin"),
		"maxBytes": 1024,
		"delete":   true,
	}

	p, err := processor.New("sizes", &FileSizeCeiling{}, processor.WithOverrides(overrides))
	require.NoError(t, err)
	require.True(t, p.IsFixable())

	require.NoError(t, p.Check(context.Background()))
	require.Equal(t, status.Error, p.Status())

	require.NoError(t, p.Fix(context.Background()))
	_, statErr := os.Stat(big)
	require.True(t, os.IsNotExist(statErr), "fix must delete the offender")

	require.NoError(t, p.Check(context.Background()))
	require.Equal(t, status.Success, p.Status())
}
