// Package filesystem provides a MaterialSource that loads course
// materials from local directories.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure Connector implements the interface.
var _ driven.MaterialSource = (*Connector)(nil)

// eventDebounce suppresses duplicate watch events for one path. Editors
// typically fire several writes when saving a file.
const eventDebounce = 500 * time.Millisecond

// Connector loads materials from one or more directories, filtered by
// file extension. Watch is backed by fsnotify.
type Connector struct {
	paths      []string
	extensions map[string]struct{}

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a filesystem connector scanning the given directories for
// files with the given extensions (lower-case, with dots).
func New(paths []string, extensions []string) *Connector {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Connector{
		paths:      paths,
		extensions: exts,
	}
}

// Name identifies the source for logging and status output.
func (c *Connector) Name() string {
	return "filesystem"
}

// Validate checks that every configured directory exists and is readable.
func (c *Connector) Validate(_ context.Context) error {
	if len(c.paths) == 0 {
		return fmt.Errorf("%w: no material paths configured", domain.ErrNotConfigured)
	}
	for _, path := range c.paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("material path %s: %w", path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("material path %s is not a directory", path)
		}
	}
	return nil
}

// Load streams all matching files from the configured directories. Both
// channels close when the walk finishes; unreadable files are reported on
// the error channel without stopping the stream.
func (c *Connector) Load(ctx context.Context) (<-chan domain.Material, <-chan error) {
	materials := make(chan domain.Material)
	errs := make(chan error, 1)

	go func() {
		defer close(materials)
		defer close(errs)

		for _, root := range c.paths {
			walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if d.IsDir() || !c.matches(path) {
					return nil
				}

				content, err := os.ReadFile(path)
				if err != nil {
					select {
					case errs <- fmt.Errorf("reading %s: %w", path, err):
					case <-ctx.Done():
						return ctx.Err()
					}
					return nil
				}

				select {
				case materials <- domain.NewMaterial(path, content):
				case <-ctx.Done():
					return ctx.Err()
				}
				return nil
			})
			if walkErr != nil && ctx.Err() == nil {
				select {
				case errs <- fmt.Errorf("walking %s: %w", root, walkErr):
				case <-ctx.Done():
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	return materials, errs
}

// Watch emits change events for matching files until the context is
// cancelled. Rapid successive events for one path are debounced.
func (c *Connector) Watch(ctx context.Context) (<-chan domain.MaterialEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, root := range c.paths {
		// Watch the root and all existing subdirectories.
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if walkErr != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", root, walkErr)
		}
	}

	c.mu.Lock()
	c.watcher = watcher
	c.mu.Unlock()

	events := make(chan domain.MaterialEvent)
	go func() {
		defer close(events)
		defer watcher.Close()

		lastSeen := make(map[string]time.Time)
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				// New directories need to be added to the watch set.
				if event.Op.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
						continue
					}
				}
				if !c.matches(event.Name) {
					continue
				}

				changeType, relevant := mapChange(event.Op)
				if !relevant {
					continue
				}

				now := time.Now()
				if last, ok := lastSeen[event.Name]; ok && now.Sub(last) < eventDebounce {
					continue
				}
				lastSeen[event.Name] = now

				select {
				case events <- domain.MaterialEvent{Type: changeType, Path: event.Name}:
				case <-ctx.Done():
					return
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Watcher errors are transient; keep watching.
			}
		}
	}()

	return events, nil
}

// Close releases the watcher if one is active.
func (c *Connector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watcher != nil {
		err := c.watcher.Close()
		c.watcher = nil
		return err
	}
	return nil
}

// matches reports whether the path has a configured extension.
func (c *Connector) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := c.extensions[ext]
	return ok
}

// mapChange converts an fsnotify operation to a material change type.
func mapChange(op fsnotify.Op) (domain.ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return domain.ChangeCreated, true
	case op.Has(fsnotify.Write):
		return domain.ChangeUpdated, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return domain.ChangeDeleted, true
	default:
		return "", false
	}
}
