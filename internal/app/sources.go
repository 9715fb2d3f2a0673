package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/evmatch/internal/input/eventmap"
	"github.com/dshills/evmatch/internal/plugin/lua"
	"github.com/dshills/evmatch/internal/watcher"
)

// isScript reports whether path is a Lua eventmap script.
func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".lua")
}

// isSource reports whether path is a file the application can load.
func isSource(path string) bool {
	if isScript(path) {
		return true
	}
	_, ok := eventmap.FormatFromPath(path)
	return ok
}

// loadSources registers every configured eventmap and script. Explicit
// sources are strict: the first one that fails stops loading. The user
// eventmap directory is lenient and only logged.
func (app *Application) loadSources(ctx context.Context) error {
	if !app.opts.NoDefaults {
		if err := eventmap.LoadDefaults(app.registry); err != nil {
			return &InitError{Component: "default eventmap", Err: err}
		}
	}

	if dir := app.opts.UserDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			app.loader.AddSearchPath(dir)
			if err := app.loader.LoadAndRegister(app.registry); err != nil {
				app.logger.Warn("user eventmaps not loaded", "dir", dir, "error", err)
			}
		}
	}

	for _, path := range app.eventmapPaths() {
		if err := app.loadPath(ctx, path); err != nil {
			return err
		}
	}
	for _, path := range app.scriptPaths() {
		if err := app.loadFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func (app *Application) eventmapPaths() []string {
	paths := append([]string(nil), app.opts.Config.Eventmaps.Paths...)
	return append(paths, app.opts.Eventmaps...)
}

func (app *Application) scriptPaths() []string {
	paths := append([]string(nil), app.opts.Config.Eventmaps.Scripts...)
	return append(paths, app.opts.Scripts...)
}

// loadPath loads an eventmap file or every eventmap file in a directory.
func (app *Application) loadPath(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return app.loadFile(ctx, path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	for _, e := range entries {
		p := filepath.Join(path, e.Name())
		if e.IsDir() || !isSource(p) {
			continue
		}
		if err := app.loadFile(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// loadFile loads one eventmap file or script and registers it. A file that
// previously produced an eventmap under another name has the old one
// removed. On error the registry is unchanged.
func (app *Application) loadFile(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}

	var m *eventmap.Eventmap
	if isScript(abs) {
		m, err = lua.LoadEventmap(ctx, abs, lua.WithExecutionTimeout(app.opts.ScriptTimeout))
	} else {
		m, err = app.loader.LoadFile(abs)
	}
	if err != nil {
		return &SourceError{Path: path, Err: err}
	}
	if err := app.registry.Register(m); err != nil {
		return &SourceError{Path: path, Err: err}
	}

	app.mu.Lock()
	old, had := app.sources[abs]
	app.sources[abs] = m.Name
	app.mu.Unlock()

	if had && old != m.Name {
		app.registry.Unregister(old)
	}
	app.logger.Debug("eventmap loaded", "path", abs, "eventmap", m.Name, "bindings", len(m.Bindings))
	return nil
}

// unloadFile removes the eventmap a file produced.
func (app *Application) unloadFile(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	app.mu.Lock()
	name, ok := app.sources[path]
	delete(app.sources, path)
	app.mu.Unlock()

	if !ok {
		return false
	}
	return app.registry.Unregister(name)
}

// Reload handles a settled file change. A failed reload keeps the eventmap
// that was loaded before.
func (app *Application) Reload(ctx context.Context, ev watcher.Event) {
	if ev.Op.Removed() {
		if app.unloadFile(ev.Path) {
			app.logger.Info("eventmap removed", "path", ev.Path)
			app.status(fmt.Sprintf("removed %s", filepath.Base(ev.Path)))
		}
		return
	}

	if err := app.loadFile(ctx, ev.Path); err != nil {
		app.logger.Warn("reload failed, keeping previous eventmap", "path", ev.Path, "error", err)
		app.status(fmt.Sprintf("reload failed: %s", filepath.Base(ev.Path)))
		return
	}
	app.logger.Info("eventmap reloaded", "path", ev.Path)
	app.status(fmt.Sprintf("reloaded %s", filepath.Base(ev.Path)))
}

// newWatcher watches every explicit source for changes.
func (app *Application) newWatcher() (*watcher.Watcher, error) {
	w, err := watcher.New(watcher.Config{
		Debounce: app.opts.Config.Eventmaps.Debounce.Duration,
		Filter:   isSource,
		Logger:   app.logger,
	}, app.Reload)
	if err != nil {
		return nil, err
	}

	for _, path := range append(app.eventmapPaths(), app.scriptPaths()...) {
		if err := w.Add(path); err != nil {
			w.Close()
			return nil, &SourceError{Path: path, Err: err}
		}
	}
	return w, nil
}
