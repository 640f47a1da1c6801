package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// BlueprintSpec holds all fields collected during the interactive wizard.
type BlueprintSpec struct {
	Name        string
	Description string
	Processes   []string
	Chained     bool
}

const definitionTemplate = `name: {{ .Name }}
{{- if .Description }}
description: {{ .Description }}
{{- end }}
processors:
{{- range $i, $proc := .Processes }}
  - name: {{ slotName $proc }}
    process: {{ $proc }}
{{- if and $.Chained (gt $i 0) }}
    links:
      - from: {{ slotName (prev $i) }}
        requires: [Success, Warning]
{{- end }}
{{- end }}
`

// ValidateName rejects blueprint names that would not survive as filenames
// or slot identifiers.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("name %q may only contain letters, digits, '-' and '_'", name)
		}
	}
	return nil
}

// RunBlueprintWizard runs an interactive huh form to collect blueprint
// metadata. If initialName is non-empty, it pre-populates the name field.
// available lists the process identifiers offered for selection.
func RunBlueprintWizard(in io.Reader, out io.Writer, initialName string, available []string) (*BlueprintSpec, error) {
	var (
		name        = initialName
		description string
		processes   []string
		chained     bool
	)

	options := make([]huh.Option[string], 0, len(available))
	for _, id := range available {
		options = append(options, huh.NewOption(id, id))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Blueprint name").
				Description("A short identifier for this pipeline").
				Placeholder("scene-sanity").
				Value(&name).
				Validate(func(s string) error {
					return ValidateName(strings.TrimSpace(s))
				}),
			huh.NewInput().
				Title("Description").
				Description("What does this pipeline verify?").
				Placeholder("Describe your checks").
				Value(&description),
			huh.NewMultiSelect[string]().
				Title("Processes").
				Description("Checks to include, in execution order").
				Options(options...).
				Value(&processes),
			huh.NewConfirm().
				Title("Chain processors?").
				Description("Each processor requires the previous one to pass").
				Value(&chained),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &BlueprintSpec{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Processes:   processes,
		Chained:     chained,
	}, nil
}

// GenerateDefinitionYAML renders a blueprint definition file from the
// given spec.
func GenerateDefinitionYAML(spec *BlueprintSpec) (string, error) {
	funcs := template.FuncMap{
		"slotName": slotName,
		"prev": func(i int) string {
			return spec.Processes[i-1]
		},
	}
	tmpl, err := template.New("definition").Funcs(funcs).Parse(definitionTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

// slotName derives a slot name from a process identifier by dropping the
// namespace prefix.
func slotName(process string) string {
	if i := strings.LastIndex(process, "."); i >= 0 {
		return process[i+1:]
	}
	return process
}
