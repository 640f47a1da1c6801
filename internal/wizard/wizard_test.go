package wizard

import (
	"testing"

	"github.com/athena-sanity/athena/internal/definition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefinitionYAML_BasicSpec(t *testing.T) {
	spec := &BlueprintSpec{
		Name:        "scene-sanity",
		Description: "Verifies a scene before publish.",
		Processes:   []string{"builtin.pathExists", "builtin.globCount"},
	}

	result, err := GenerateDefinitionYAML(spec)
	require.NoError(t, err)

	assert.Contains(t, result, "name: scene-sanity")
	assert.Contains(t, result, "description: Verifies a scene before publish.")
	assert.Contains(t, result, "- name: pathExists")
	assert.Contains(t, result, "process: builtin.pathExists")
	assert.Contains(t, result, "- name: globCount")
	assert.NotContains(t, result, "links:")
}

func TestGenerateDefinitionYAML_Chained(t *testing.T) {
	spec := &BlueprintSpec{
		Name:      "chained",
		Processes: []string{"builtin.pathExists", "builtin.globCount"},
		Chained:   true,
	}

	result, err := GenerateDefinitionYAML(spec)
	require.NoError(t, err)

	assert.Contains(t, result, "links:")
	assert.Contains(t, result, "- from: pathExists")
	assert.Contains(t, result, "requires: [Success, Warning]")
}

func TestGenerateDefinitionYAML_ValidatesAgainstSchema(t *testing.T) {
	spec := &BlueprintSpec{
		Name:      "valid",
		Processes: []string{"builtin.pathExists", "builtin.globCount", "builtin.fileSizeOver"},
		Chained:   true,
	}

	result, err := GenerateDefinitionYAML(spec)
	require.NoError(t, err)
	require.Empty(t, definition.ValidateBytes([]byte(result)))
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "scene-sanity", wantErr: false},
		{name: "underscore and digits", input: "rig_check_01", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "spaces", input: "scene sanity", wantErr: true},
		{name: "path separator", input: "a/b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSlotName(t *testing.T) {
	assert.Equal(t, "pathExists", slotName("builtin.pathExists"))
	assert.Equal(t, "bare", slotName("bare"))
}
