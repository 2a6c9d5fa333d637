package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/config"
	"github.com/raskyld/gitlab-components-docs/internal/templates"
)

func newGetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get resources",
		Long:  "Get the configuration and the templates used to render the README.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newGetConfigCmd(a))
	cmd.AddCommand(newGetDefaultsCmd(a))
	cmd.AddCommand(newGetTemplateCmd(a))

	return cmd
}

func newGetConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging the defaults, the config file, the
environment and the flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.cfg.ToYAML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			if a.configUsed != "" {
				fmt.Fprintf(a.stdout, "# Loaded from %s\n", a.configUsed)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
}

func newGetDefaultsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration",
		Long: `Print the default configuration, ready to be saved as the config file.

Examples:
  gitlab-components-docs get defaults > ` + config.FileName + `.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := config.DefaultConfig(a.workDir)
			out, err := defaults.ToYAML()
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
}

func newGetTemplateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the built-in README template",
		Long: `Print the built-in README template, to start a custom one from it.

The inputs_table macro and the functions of the built-in template are
available to custom templates too.

Examples:
  gitlab-components-docs get template > README.md.tmpl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := templates.GetTemplate(templates.Readme)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.stdout, content)
			return err
		},
	}
}
