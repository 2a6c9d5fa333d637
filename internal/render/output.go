package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
)

// ErrStale is returned by Check when the document on disk is out of date
var ErrStale = errors.New("documentation is out of date")

// Write stores the document at path, creating missing parent directories
func Write(fsys afero.Fs, path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(fsys, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Check compares the document stored at path with content. When they differ
// it returns a unified diff from the stored to the expected document along
// with ErrStale. A missing document is stale.
func Check(fsys afero.Fs, path string, content []byte) (string, error) {
	current, err := afero.ReadFile(fsys, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if bytes.Equal(current, content) {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(content)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", path, err)
	}

	return diff, ErrStale
}
