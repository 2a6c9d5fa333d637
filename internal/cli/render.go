package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/raskyld/gitlab-components-docs/internal/catalog"
	"github.com/raskyld/gitlab-components-docs/internal/render"
	"github.com/raskyld/gitlab-components-docs/internal/watch"
)

// stdoutOutput sends the README to stdout instead of a file
const stdoutOutput = "-"

type generateOptions struct {
	check bool
	watch bool
}

// scan loads the catalog and reports the entries that failed to load
func (a *app) scan() (*catalog.Catalog, error) {
	scanner, err := catalog.NewScanner(
		catalog.WithFs(a.fs),
		catalog.WithLogger(a.logger),
		catalog.WithExclude(a.cfg.Exclude...),
	)
	if err != nil {
		return nil, err
	}

	result, err := scanner.Scan(a.path(a.cfg.TemplatesDir))
	if err != nil {
		return nil, err
	}

	a.reportRejected(result)
	return result, nil
}

// reportRejected logs one warning per entry that is not a component
func (a *app) reportRejected(c *catalog.Catalog) {
	rejected := 0
	for _, entry := range c.Entries() {
		if entry.Outcome.IsLoaded() {
			continue
		}
		rejected++
		a.logger.Warn("not a component, skipping",
			"name", entry.Name,
			"path", entry.Outcome.Source,
			"reason", describeDiagnostics(entry.Outcome.Diagnostics))
	}
	a.logger.Info("catalog scanned", "loaded", c.Len()-rejected, "rejected", rejected)
}

func describeDiagnostics(diagnostics []string) string {
	if len(diagnostics) == 0 {
		return "no YAML document"
	}
	return strings.Join(diagnostics, "; ")
}

// renderReadme scans the catalog and renders the README in memory
func (a *app) renderReadme() ([]byte, error) {
	result, err := a.scan()
	if err != nil {
		return nil, err
	}

	engine := render.New(render.Options{
		Fs:      a.fs,
		Dir:     a.workDir,
		Pattern: a.cfg.Template,
		Logger:  a.logger,
	})

	return engine.RenderBytes(render.Data{
		CatalogName:        a.cfg.CatalogName,
		CatalogDescription: a.cfg.CatalogDescription,
		Components:         render.Components(result),
		FooterEnabled:      a.cfg.Footer,
		Version:            version,
	})
}

func (a *app) generate(ctx context.Context, opts generateOptions) error {
	if a.cfg.Output == stdoutOutput && (opts.check || opts.watch) {
		return fmt.Errorf("--check and --watch need an output file")
	}

	if err := a.generateOnce(opts.check); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	return a.watchChanges(ctx)
}

func (a *app) generateOnce(check bool) error {
	content, err := a.renderReadme()
	if err != nil {
		return err
	}

	if a.cfg.Output == stdoutOutput {
		_, err := a.stdout.Write(content)
		return err
	}

	output := a.path(a.cfg.Output)
	if check {
		diff, err := render.Check(a.fs, output, content)
		if errors.Is(err, render.ErrStale) {
			fmt.Fprint(a.stdout, diff)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "✓ %s is up to date\n", a.cfg.Output)
		return nil
	}

	if err := render.Write(a.fs, output, content); err != nil {
		return err
	}
	a.logger.Info("README generated", "path", output)
	return nil
}

// watchChanges regenerates the README until ctx is cancelled or the process is
// interrupted
func (a *app) watchChanges(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	patterns, err := a.watchPatterns()
	if err != nil {
		return err
	}
	output, err := filepath.Rel(a.workDir, a.path(a.cfg.Output))
	if err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		BaseDir:  a.workDir,
		Patterns: patterns,
		Logger:   a.logger,
		OnChange: func(_ context.Context, changed []string) error {
			changed = slices.DeleteFunc(changed, func(p string) bool { return p == output })
			if len(changed) == 0 {
				return nil
			}
			a.logger.Info("change detected, regenerating", "paths", changed)
			return a.generateOnce(false)
		},
	})
	if err != nil {
		return err
	}

	a.logger.Info("watching for changes", "patterns", patterns)
	return w.Run(ctx)
}

// watchPatterns returns the patterns covering the components and the README
// override, relative to the working directory
func (a *app) watchPatterns() ([]string, error) {
	templatesDir, err := filepath.Rel(a.workDir, a.path(a.cfg.TemplatesDir))
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(templatesDir, "..") {
		return nil, fmt.Errorf("--watch needs %s to be inside %s", a.cfg.TemplatesDir, a.workDir)
	}

	patterns := []string{"**"}
	if templatesDir != "." {
		patterns[0] = filepath.ToSlash(templatesDir) + "/**"
	}
	if a.cfg.Template != "" {
		patterns = append(patterns, filepath.ToSlash(a.cfg.Template))
	}
	return patterns, nil
}
