package main

import (
	"fmt"
	"os"

	"github.com/athena-sanity/athena/internal/definition"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <blueprint.yaml> [blueprint.yaml...]",
		Short: "Validate blueprint files against the schema",
		Long: `Validate one or more blueprint files against the blueprint schema
without building or running them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: validateCommandE,
	}
	return cmd
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	invalid := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if errs := definition.ValidateBytes(data); len(errs) > 0 {
			invalid++
			fmt.Fprintf(out, "✗ %s\n", path)
			for _, msg := range errs {
				fmt.Fprintf(out, "    %s\n", msg)
			}
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(args))
	}
	return nil
}
