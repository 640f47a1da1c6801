package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCommand_Registry(t *testing.T) {
	out, err := executeCommand(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "builtin.pathExists")
	require.Contains(t, out, "builtin.globCount")
	require.Contains(t, out, "builtin.fileSizeOver")
}

func TestListCommand_Blueprint(t *testing.T) {
	dir := t.TempDir()
	path := writeBlueprint(t, dir, "listing.yaml", `
name: listing
description: Demo pipeline.
processors:
  - name: second
    process: builtin.globCount
    links:
      - from: first
        requires: [Success]
  - name: first
    process: builtin.pathExists
  - name: muted
    process: builtin.pathExists
    enabled: false
    nonBlocking: true
`)

	out, err := executeCommand(t, "list", path)
	require.NoError(t, err)
	require.Contains(t, out, "Blueprint: listing")
	require.Contains(t, out, "Demo pipeline.")

	// Resolved order puts the dependency before its dependent.
	require.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
	require.Contains(t, out, "disabled")
	require.Contains(t, out, "non-blocking")
	require.Contains(t, out, "pattern = ")
}
