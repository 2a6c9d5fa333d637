package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/catalog"
)

// inputTypes lists the input types accepted by GitLab
var inputTypes = []string{"string", "number", "boolean", "array"}

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that every catalog entry is a valid component",
		Long: `Load every entry of the templates directory and report the ones that are not
components, with the reason for each YAML document of the entry.

Loaded components are also checked for inputs GitLab would refuse: unknown
types, defaults not matching their type (a quoted "true" is not a boolean)
and defaults missing from options.
These are reported as warnings, or as errors with --strict.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.scan()
			if err != nil {
				return err
			}
			return validateCatalog(a.stdout, result, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat input warnings as errors")

	return cmd
}

// validateCatalog prints a report of c and fails when an entry is rejected
func validateCatalog(w io.Writer, c *catalog.Catalog, strict bool) error {
	var rejected, warned int

	for _, entry := range c.Entries() {
		if !entry.Outcome.IsLoaded() {
			rejected++
			fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), nameStyle.Render(entry.Name))
			diagnostics := entry.Outcome.Diagnostics
			if len(diagnostics) == 0 {
				diagnostics = []string{"no YAML document"}
			}
			for _, d := range diagnostics {
				fmt.Fprintf(w, "    %s\n", detailStyle.Render(d))
			}
			continue
		}

		warnings := validateComponent(entry.Outcome.Component)
		if len(warnings) == 0 {
			fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), nameStyle.Render(entry.Name))
			continue
		}

		warned++
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("⚠"), nameStyle.Render(entry.Name))
		for _, warning := range warnings {
			fmt.Fprintf(w, "    %s\n", detailStyle.Render(warning))
		}
	}

	fmt.Fprintln(w)
	switch {
	case rejected > 0:
		return fmt.Errorf("%d of %d entries are not valid components", rejected, c.Len())
	case strict && warned > 0:
		return fmt.Errorf("%d components have input warnings", warned)
	}

	fmt.Fprintf(w, "%s\n", successStyle.Render(fmt.Sprintf("✓ %d components validated", c.Len())))
	return nil
}

// validateComponent checks the inputs of a loaded component
func validateComponent(component *catalog.Component) []string {
	var warnings []string
	for _, name := range component.Spec.InputNames() {
		for _, w := range validateInput(component.Spec.Inputs[name]) {
			warnings = append(warnings, fmt.Sprintf("[%s] %s", name, w))
		}
	}
	return warnings
}

// validateInput checks a single input declaration
func validateInput(input catalog.Input) []string {
	var warnings []string

	inputType := "string"
	if input.Type != nil {
		inputType = *input.Type
	}
	if !slices.Contains(inputTypes, inputType) {
		warnings = append(warnings, fmt.Sprintf(
			"Unknown type %q, expected one of %s", inputType, strings.Join(inputTypes, ", ")))
		return warnings
	}

	if input.Default == nil {
		return warnings
	}
	def := input.Default.String()

	if len(input.Options) > 0 && !slices.Contains(input.Options, def) {
		warnings = append(warnings, fmt.Sprintf(
			"Default %q is not one of the options", def))
	}

	if inputType == "string" {
		return warnings
	}

	// Type checking on the resolved tag, so that a quoted "true" stays a string
	switch inputType {
	case "boolean":
		if input.Default.Tag != "!!bool" {
			warnings = append(warnings, fmt.Sprintf(
				"Type mismatch: expected boolean default, got %s %q", input.Default.Tag, def))
		}

	case "number":
		switch input.Default.Tag {
		case "!!int", "!!float":
			// Valid number types
		default:
			warnings = append(warnings, fmt.Sprintf(
				"Type mismatch: expected number default, got %s %q", input.Default.Tag, def))
		}

	case "array":
		// Only scalar defaults can be loaded
		warnings = append(warnings, fmt.Sprintf(
			"Type mismatch: expected array default, got %s %q", input.Default.Tag, def))
	}

	return warnings
}
