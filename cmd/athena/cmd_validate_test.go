package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCommand_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := passingBlueprint(t, dir)

	out, err := executeCommand(t, "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "✓")
}

func TestValidateCommand_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeBlueprint(t, dir, "invalid.yaml", `
name: invalid
processors:
  - name: orphan
`)

	out, err := executeCommand(t, "validate", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 1")
	require.Contains(t, out, "✗")
}

func TestValidateCommand_MixedFiles(t *testing.T) {
	dir := t.TempDir()
	good := passingBlueprint(t, dir)
	bad := writeBlueprint(t, dir, "bad.yaml", `processors: []`)

	out, err := executeCommand(t, "validate", good, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2")
	require.Contains(t, out, "✓")
	require.Contains(t, out, "✗")
}
