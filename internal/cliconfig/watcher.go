package cliconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/utkit/utforge/internal/domain"
	"github.com/utkit/utforge/pkg/forge"
	"github.com/utkit/utforge/pkg/log"
)

// DefaultDebounceDelay is how long the watcher waits after the last file
// event before reloading.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher reloads the persona and platform of a forge.Settings whenever the
// config file changes. Keys pinned by a flag or an environment variable are
// left alone.
type Watcher struct {
	path     string
	settings *forge.Settings
	pinned   map[string]bool
	logger   log.Logger
	delay    time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	reloads  int
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, settings *forge.Settings, pinned map[string]bool, logger log.Logger) *Watcher {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:     path,
		settings: settings,
		pinned:   pinned,
		logger:   logger,
		delay:    DefaultDebounceDelay,
	}
}

// SetDebounceDelay changes the debounce delay. Non-positive values are ignored.
func (w *Watcher) SetDebounceDelay(d time.Duration) {
	if d > 0 {
		w.delay = d
	}
}

// Run watches the directory of the config file until ctx is done. Editors
// often replace files instead of writing them, so the directory is watched
// rather than the file.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info("config watcher started", log.String("path", w.path))

	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			w.stopDebounce()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

// Reloads returns how many reloads have been applied.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		if err := w.Reload(); err != nil {
			w.logger.Warn("config reload failed", log.String("path", w.path), log.Err(err))
		}
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

// Reload reads the config file once and applies persona and platform.
// If either value is invalid nothing is applied.
func (w *Watcher) Reload() error {
	fc, err := LoadFileConfig(w.path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	s := newConfigSetter(w.pinned)
	var persona, platform string
	s.setString("persona", fc.Persona, &persona)
	s.setString("platform", fc.Platform, &platform)

	var (
		nextPersona  domain.Persona
		nextPlatform domain.Platform
	)
	if persona != "" {
		if nextPersona, err = domain.ParsePersona(persona); err != nil {
			return err
		}
	}
	if platform != "" {
		if nextPlatform, err = domain.ParsePlatform(platform); err != nil {
			return err
		}
	}

	if nextPersona != "" {
		if err := w.settings.SetPersona(nextPersona); err != nil {
			return err
		}
	}
	if nextPlatform != "" {
		if err := w.settings.SetPlatform(nextPlatform); err != nil {
			return err
		}
	}

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()

	w.logger.Info("config reloaded",
		log.String("persona", w.settings.Persona().String()),
		log.String("platform", w.settings.Platform().String()),
	)
	return nil
}
