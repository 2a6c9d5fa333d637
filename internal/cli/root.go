package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/raskyld/gitlab-components-docs/internal/config"
)

// version is set at build time with -ldflags "-X .../internal/cli.version=..."
var version = "dev"

// app holds the state shared by every command of a run
type app struct {
	stdout io.Writer
	stderr io.Writer
	fs     afero.Fs

	workDir    string
	configFile string
	configUsed string

	cfg    *config.Config
	logger *log.Logger
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		fs:     afero.NewOsFs(),
	}
}

func Execute() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "gitlab-components-docs",
		Short: "Generate the README of a GitLab CI/CD component catalog",
		Long: `gitlab-components-docs reads the components of a GitLab CI/CD catalog and
renders a Markdown README documenting the inputs of each of them.

A component is either a YAML file directly under the templates directory or a
directory holding a template.yml file.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), opts)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to the config file (default: "+config.FileName+".yaml in the working directory)")
	flags.StringVarP(&a.workDir, "directory", "C", "", "Run as if started in this directory")
	flags.String("templates-dir", "", "Directory holding the catalog components (default: templates)")
	flags.StringSlice("exclude", nil, "Glob patterns of templates-dir entries to ignore")
	flags.String("log-level", "", "Log level: debug, info, warn or error (default: info)")
	flags.StringP("catalog-name", "n", "", "Name of the catalog (default: name of the working directory)")
	flags.StringP("catalog-desc", "d", "", "Description of the catalog")
	flags.String("template", "", "Glob pattern of the README template overriding the built-in one (default: README.md.tmpl)")
	flags.Bool("no-footer", false, "Do not add the generator footer")

	cmd.Flags().StringP("output", "o", "", "File the README is written to, - for stdout (default: README.md)")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail with a diff instead of writing when the README is out of date")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Regenerate the README when the components or the template change")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newValidateCmd(a))
	cmd.AddCommand(newPreviewCmd(a))
	cmd.AddCommand(newGetCmd(a))
	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd
}

// resolveWorkDir makes the working directory absolute
func (a *app) resolveWorkDir() error {
	dir := a.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	a.workDir = abs
	return nil
}

// setup loads the configuration and creates the logger
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.resolveWorkDir(); err != nil {
		return err
	}

	cfg, used, err := config.Load(config.LoadOptions{
		WorkDir:    a.workDir,
		ConfigFile: a.configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.configUsed = used

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = log.NewWithOptions(a.stderr, log.Options{
		Prefix: "gitlab-components-docs",
		Level:  level,
	})
	if used != "" {
		a.logger.Debug("loaded config file", "path", used)
	}

	return nil
}

// path resolves p against the working directory
func (a *app) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.workDir, p)
}
