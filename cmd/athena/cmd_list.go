package main

import (
	"fmt"
	"strings"

	"github.com/athena-sanity/athena/internal/definition"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [blueprint.yaml]",
		Short: "List registered processes or a blueprint's resolved order",
		Long: `Without arguments, list the process identifiers available in the
session registry.

With a blueprint file, build it and print its processors in resolved
execution order, with their capabilities and configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: listCommandE,
	}
	return cmd
}

func listCommandE(cmd *cobra.Command, args []string) error {
	reg, err := sessionRegistry()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, id := range reg.ProcessIdentifiers() {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	def, err := definition.Load(args[0])
	if err != nil {
		return err
	}
	bp, err := def.Build(reg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Blueprint: %s\n", bp.Name())
	if def.Description != "" {
		fmt.Fprintf(out, "%s\n", def.Description)
	}
	fmt.Fprintln(out)

	for i, p := range bp.Processors() {
		var caps []string
		if p.IsCheckable() {
			caps = append(caps, "check")
		}
		if p.IsFixable() {
			caps = append(caps, "fix")
		}
		if !p.IsEnabled() {
			caps = append(caps, "disabled")
		}
		if p.IsNonBlocking() {
			caps = append(caps, "non-blocking")
		}

		fmt.Fprintf(out, "%2d. %-24s %s\n", i+1, p.Name(), strings.Join(caps, ", "))
		for _, name := range p.Parameters().Names() {
			if value, ok := p.Parameters().Get(name); ok {
				fmt.Fprintf(out, "      %s = %v\n", name, value)
			}
		}
	}
	return nil
}
