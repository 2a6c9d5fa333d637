package catalog

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// TemplateFileName is the file holding the component when an entry is a directory
const TemplateFileName = "template.yml"

// ErrRootUnreadable is returned by Scan when the catalog root cannot be listed
var ErrRootUnreadable = errors.New("catalog root is unreadable")

// Scanner loads every entry of a catalog root directory
type Scanner struct {
	fs      afero.Fs
	logger  *log.Logger
	exclude []string
}

// Option configures a Scanner
type Option func(*Scanner)

// WithFs sets the filesystem the scanner reads from (default: the OS filesystem)
func WithFs(fs afero.Fs) Option {
	return func(s *Scanner) {
		s.fs = fs
	}
}

// WithLogger sets the logger receiving per-entry warnings
func WithLogger(logger *log.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithExclude skips entries whose name matches one of the doublestar patterns
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// NewScanner creates a Scanner. It fails if an exclude pattern is malformed.
func NewScanner(opts ...Option) (*Scanner, error) {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	for _, pattern := range s.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return s, nil
}

// Scan loads every immediate child of root into a Catalog. Only a failure to
// list root itself is returned as an error; entries that cannot be read are
// logged and omitted.
func (s *Scanner) Scan(root string) (*Catalog, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootUnreadable, root)
	}

	dir, err := s.fs.Open(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootUnreadable, err)
	}
	defer dir.Close()

	// Once root is open, listing errors only cost the entries they hide
	infos, err := dir.Readdir(-1)
	if err != nil {
		s.logger.Warn("could not read every entry", "root", root, "read", len(infos), "err", err)
	}

	results := NewCatalog()
	for _, info := range infos {
		name := info.Name()
		path := filepath.Join(root, name)

		if s.excluded(name) {
			s.logger.Debug("skipping excluded entry", "path", path)
			continue
		}

		id, err := Identifier(name)
		if err != nil {
			s.logger.Warn("skipping entry: could not determine the component name", "path", path, "err", err)
			continue
		}

		outcome, err := s.LoadEntry(path)
		if err != nil {
			s.logger.Warn("could not process entry", "path", path, "err", err)
			continue
		}

		if results.Add(id, outcome) {
			s.logger.Debug("component name collision, keeping the last entry", "id", id, "path", path)
		}
	}

	return results, nil
}

// ResolveEntry returns the file holding the component of a catalog entry:
// the entry itself for a file, its template.yml for a directory.
func (s *Scanner) ResolveEntry(path string) (string, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return filepath.Join(path, TemplateFileName), nil
	}
	return path, nil
}

// LoadEntry reads the component of a catalog entry and parses it. The error
// is only set when the file could not be read; parse failures are reported
// through a rejected Outcome.
func (s *Scanner) LoadEntry(path string) (Outcome, error) {
	resolved, err := s.ResolveEntry(path)
	if err != nil {
		return Outcome{}, err
	}

	data, err := afero.ReadFile(s.fs, resolved)
	if err != nil {
		return Outcome{}, err
	}

	if !utf8.Valid(data) {
		return Outcome{}, fmt.Errorf("%s: invalid UTF-8 content", resolved)
	}

	outcome := Parse(string(data))
	outcome.Source = resolved
	return outcome, nil
}

func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.exclude {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Identifier derives the component name from an entry name by stripping its
// last extension: "build.yml" is "build", "deploy" stays "deploy" and a
// dotfile such as ".hidden" keeps its name.
func Identifier(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("no component name in %q", name)
	}
	if !utf8.ValidString(name) {
		return "", fmt.Errorf("%q contains non UTF-8 characters", name)
	}

	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i], nil
	}
	return name, nil
}
