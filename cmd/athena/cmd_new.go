package main

import (
	"fmt"
	"os"

	"github.com/athena-sanity/athena/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newNewCommand() *cobra.Command {
	var processes []string

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new blueprint file",
		Long: `Create a new blueprint definition file.

When running in a terminal (TTY), launches an interactive wizard to pick
the processes and wiring. In non-interactive environments (CI, pipes),
builds a blueprint from the --process flags instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newCommandE(cmd, args[0], processes)
		},
	}

	cmd.Flags().StringArrayVar(&processes, "process", nil, "Process identifier to include (can be repeated)")

	return cmd
}

func newCommandE(cmd *cobra.Command, name string, processes []string) error {
	if err := wizard.ValidateName(name); err != nil {
		return err
	}

	reg, err := sessionRegistry()
	if err != nil {
		return err
	}

	// Check TTY from the command's input stream, not os.Stdin directly.
	inReader := cmd.InOrStdin()
	isTTY := false
	if f, ok := inReader.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	var spec *wizard.BlueprintSpec
	if isTTY {
		spec, err = wizard.RunBlueprintWizard(inReader, cmd.OutOrStdout(), name, reg.ProcessIdentifiers())
		if err != nil {
			return err
		}
		if spec.Name != "" && spec.Name != name {
			return fmt.Errorf("wizard name %q does not match CLI argument %q", spec.Name, name)
		}
		spec.Name = name
	} else {
		if len(processes) == 0 {
			return fmt.Errorf("no terminal detected; pass at least one --process")
		}
		for _, id := range processes {
			if _, err := reg.ResolveProcess(id); err != nil {
				return err
			}
		}
		spec = &wizard.BlueprintSpec{Name: name, Processes: processes}
	}

	content, err := wizard.GenerateDefinitionYAML(spec)
	if err != nil {
		return err
	}

	path := name + ".yaml"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %s\n", path, pluralize(len(spec.Processes), "processor"))
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
