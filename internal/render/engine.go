package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/raskyld/gitlab-components-docs/internal/templates"
)

// Options configures an Engine
type Options struct {
	// Fs is the filesystem searched for the README override (default: OS)
	Fs afero.Fs
	// Dir is the directory Pattern is relative to
	Dir string
	// Pattern is a doublestar pattern selecting the README override. The
	// first match in lexical order wins. Empty disables the lookup.
	Pattern string
	Logger  *log.Logger
}

// Engine renders README documents
type Engine struct {
	tmpl   *template.Template
	source string
}

// New prepares the templates. A README override that cannot be found, read
// or parsed is reported and replaced by the built-in README. New panics if a
// built-in template does not parse, which means the binary itself is broken.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	// Parse the entrypoint and the macros together
	base := template.New(templates.Entrypoint).Funcs(FuncMap())
	template.Must(base.Parse(templates.MustGetTemplate(templates.Entrypoint)))
	template.Must(base.New(templates.Macros).Parse(templates.MustGetTemplate(templates.Macros)))

	if opts.Pattern != "" {
		tmpl, path, err := withOverride(base, fsys, opts.Dir, opts.Pattern)
		switch {
		case err != nil:
			logger.Warn("failed to load the README template", "pattern", opts.Pattern, "err", err)
		case tmpl == nil:
			logger.Debug("no README template found", "pattern", opts.Pattern, "dir", opts.Dir)
		default:
			logger.Debug("using README template", "path", path)
			return &Engine{tmpl: tmpl, source: path}
		}
	}

	logger.Info("Using sensible default for the README!")
	template.Must(base.New(templates.Readme).Parse(templates.MustGetTemplate(templates.Readme)))
	return &Engine{tmpl: base}
}

// withOverride parses the first file matching pattern as the README template.
// It returns a nil template when nothing matches.
func withOverride(base *template.Template, fsys afero.Fs, dir, pattern string) (*template.Template, string, error) {
	if dir == "" {
		dir = "."
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", err
	}

	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fsys, dir)), filepath.ToSlash(pattern))
	if err != nil {
		return nil, "", fmt.Errorf("invalid pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, "", nil
	}
	slices.Sort(matches)

	path := filepath.Join(dir, filepath.FromSlash(matches[0]))
	content, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	tmpl, err := base.Clone()
	if err != nil {
		return nil, "", fmt.Errorf("failed to clone base templates: %w", err)
	}
	if _, err := tmpl.New(templates.Readme).Parse(string(content)); err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return tmpl, path, nil
}

// Source returns the path of the README override in use, or an empty string
// when the built-in README is used
func (e *Engine) Source() string {
	return e.source
}

// Render executes the templates with data and writes the document to w
func (e *Engine) Render(w io.Writer, data Data) error {
	if err := e.tmpl.ExecuteTemplate(w, templates.Entrypoint, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// RenderBytes is like Render but returns the document
func (e *Engine) RenderBytes(data Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Render(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
