package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/config"
	"github.com/raskyld/gitlab-components-docs/internal/templates"
)

type initOptions struct {
	withTemplate bool
	force        bool
}

func newInitCmd(a *app) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file for the catalog",
		Long: `Create ` + config.FileName + `.yaml with the default settings in the working
directory and, with --with-template, a README.md.tmpl copy of the built-in
README template to customize.`,
		Args: cobra.NoArgs,
		// The config file may not exist yet
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolveWorkDir()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.initProject(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.withTemplate, "with-template", false, "Also create README.md.tmpl from the built-in template")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing files")

	return cmd
}

func (a *app) initProject(opts initOptions) error {
	defaults := config.DefaultConfig(a.workDir)
	content, err := defaults.ToYAML()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	configPath := filepath.Join(a.workDir, config.FileName+".yaml")
	if err := a.createFile(configPath, content, opts.force); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✓ Generated %s\n", configPath)

	if opts.withTemplate {
		readme, err := templates.GetTemplate(templates.Readme)
		if err != nil {
			return err
		}
		templatePath := filepath.Join(a.workDir, defaults.Template)
		if err := a.createFile(templatePath, []byte(readme), opts.force); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "✓ Generated %s\n", templatePath)
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "Next steps:")
	fmt.Fprintf(a.stdout, "  1. Edit %s to describe your catalog\n", configPath)
	fmt.Fprintln(a.stdout, "  2. Run 'gitlab-components-docs' to generate the README")
	fmt.Fprintln(a.stdout)

	return nil
}

// createFile writes path unless it already exists and force is false
func (a *app) createFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := a.fs.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}

	if err := afero.WriteFile(a.fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
