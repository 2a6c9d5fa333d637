// Package watch reruns a callback when files matching glob patterns change.
//
// Events arriving within the debounce window are coalesced, so the callback
// fires once with every path changed during the window.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 300 * time.Millisecond

// Config holds the parameters of a Watcher
type Config struct {
	// BaseDir is the directory patterns are relative to. Empty means the
	// current working directory.
	BaseDir string
	// Patterns are doublestar patterns (e.g. "templates/**") selecting the
	// paths that trigger OnChange
	Patterns []string
	// Debounce is the quiet period before OnChange fires
	Debounce time.Duration
	// OnChange receives the changed paths, relative to BaseDir and sorted
	OnChange func(ctx context.Context, changed []string) error
	Logger   *log.Logger
}

// Watcher monitors the directories needed by its patterns
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	baseDir  string
	debounce time.Duration
	logger   *log.Logger
	// recursive holds the directories whose new subdirectories are watched too
	recursive []string
	started   atomic.Bool
}

// New creates a Watcher and registers the directories its patterns need
func New(cfg Config) (*Watcher, error) {
	if len(cfg.Patterns) == 0 {
		return nil, errors.New("watch: no pattern to watch")
	}
	for _, pattern := range cfg.Patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("watch: invalid pattern %q", pattern)
		}
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		baseDir:  absBase,
		debounce: debounce,
		logger:   logger,
	}

	if err := w.addDirectories(); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// addDirectories watches the static prefix of every pattern, and every
// directory below it when the rest of the pattern spans directories.
func (w *Watcher) addDirectories() error {
	for _, pattern := range w.cfg.Patterns {
		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		dir := filepath.Join(w.baseDir, filepath.FromSlash(base))

		if !strings.Contains(rest, "/") && !strings.Contains(rest, "**") {
			if err := w.add(dir); err != nil {
				return err
			}
			continue
		}

		w.recursive = append(w.recursive, dir)
		if err := w.addTree(dir); err != nil {
			return err
		}
	}
	return nil
}

func (w *Watcher) add(dir string) error {
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	w.logger.Debug("watching directory", "dir", dir)
	return nil
}

// addTree watches root and its subdirectories. Subdirectories that cannot be
// read are skipped.
func (w *Watcher) addTree(root string) error {
	if err := w.add(root); err != nil {
		return err
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("could not watch directory", "dir", path, "err", err)
		}
		return nil
	})
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It must
// be called once; the underlying watcher is closed when it returns.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}
	defer w.fsw.Close()

	pending := make(map[string]struct{})
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil || !w.matches(rel) {
				continue
			}

			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			changed := slices.Sorted(maps.Keys(pending))
			clear(pending)

			if w.cfg.OnChange != nil {
				if err := w.cfg.OnChange(ctx, changed); err != nil {
					w.logger.Error("watch callback failed", "err", err)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// Close releases the watcher when Run is never called
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			return true
		}
	}
	return false
}

// maybeAddDir extends recursive watches to directories created after startup
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	for _, root := range w.recursive {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			if err := w.addTree(path); err != nil {
				w.logger.Warn("could not watch new directory", "dir", path, "err", err)
			}
			return
		}
	}
}
