// Package app runs an interactive evmatch session. It wires together the
// eventmap registry, the input handler, the terminal backend and the file
// watcher, and manages the session lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/evmatch/internal/backend"
	"github.com/dshills/evmatch/internal/config"
	"github.com/dshills/evmatch/internal/input"
	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/eventmap"
	"github.com/dshills/evmatch/internal/plugin/lua"
)

// Built-in actions handled by the application itself.
const (
	ActionQuit  = "app.quit"
	ActionHelp  = "app.help"
	ActionClear = "app.clear"
	ActionTrace = "app.trace"
)

// Options configures the application.
type Options struct {
	// Config is the loaded configuration. Nil means config.Default().
	Config *config.Config

	// Eventmaps are extra eventmap files or directories.
	Eventmaps []string

	// Scripts are extra Lua eventmap scripts.
	Scripts []string

	// UserDir is scanned for eventmap files. Broken files there are logged
	// and skipped.
	UserDir string

	// NoDefaults skips the built-in eventmap.
	NoDefaults bool

	// ScriptTimeout bounds each Lua script run.
	// Default: lua.DefaultExecutionTimeout.
	ScriptTimeout time.Duration

	Logger *slog.Logger
}

// Application is the central coordinator of an evmatch session.
type Application struct {
	opts   Options
	logger *slog.Logger

	registry *eventmap.Registry
	loader   *eventmap.Loader
	handler  *input.Handler
	backend  backend.Backend

	mu      sync.Mutex
	sources map[string]string // absolute source path -> eventmap name
	trace   *traceHook

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New creates an application and loads every eventmap source. It fails on
// the first source that cannot be loaded or contains a malformed pattern.
func New(ctx context.Context, opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ScriptTimeout <= 0 {
		opts.ScriptTimeout = lua.DefaultExecutionTimeout
	}

	registry := eventmap.NewRegistry()
	app := &Application{
		opts:     opts,
		logger:   opts.Logger,
		registry: registry,
		loader:   eventmap.NewLoader(opts.Logger),
		handler:  input.NewHandler(registry, input.Config{Logger: opts.Logger}),
		sources:  make(map[string]string),
		done:     make(chan struct{}),
	}

	if err := app.loadSources(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

// Registry returns the eventmap registry.
func (app *Application) Registry() *eventmap.Registry {
	return app.registry
}

// Handler returns the input handler.
func (app *Application) Handler() *input.Handler {
	return app.handler
}

// Summary describes the loaded eventmaps.
func (app *Application) Summary() string {
	names := app.registry.Names()
	total := 0
	for _, name := range names {
		if c, ok := app.registry.Get(name); ok {
			total += c.Len()
		}
	}
	return fmt.Sprintf("%d bindings in %d eventmaps (%s)", total, len(names), strings.Join(names, ", "))
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run processes input until the quit action, Shutdown or ctx cancellation.
// It returns ErrQuit when the session ended through the quit action.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()
	app.applyInputModes()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	defer wg.Wait()
	if app.opts.Config.Eventmaps.Watch {
		w, err := app.newWatcher()
		if err != nil {
			app.logger.Warn("hot reload disabled", "error", err)
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer w.Close()
				if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					app.logger.Warn("watcher stopped", "error", err)
				}
			}()
		}
	}

	// PollEvent blocks, so cancellation shuts the backend down to wake it.
	go func() {
		select {
		case <-ctx.Done():
			app.Shutdown()
		case <-app.done:
		}
	}()

	app.status("ready: " + app.Summary())
	app.logger.Info("session started", "eventmaps", app.registry.Names())

	for {
		ev, ok := app.backend.PollEvent()
		if !ok {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			app.Shutdown()
			return err
		}
	}
}

func (app *Application) applyInputModes() {
	in := app.opts.Config.Input
	if in.Mouse {
		app.backend.EnableMouse()
	} else {
		app.backend.DisableMouse()
	}
	if in.Paste {
		app.backend.EnablePaste()
	} else {
		app.backend.DisablePaste()
	}
	if in.Focus {
		app.backend.EnableFocus()
	} else {
		app.backend.DisableFocus()
	}
}

// handleEvent resolves one event and performs the actions it produced.
func (app *Application) handleEvent(ev event.Event) error {
	if _, matched := app.handler.HandleEvent(ev); !matched {
		app.status("no match: " + ev.String())
		return nil
	}

	for {
		select {
		case action, ok := <-app.handler.Actions():
			if !ok {
				return nil
			}
			if err := app.perform(action); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// perform executes built-in actions and reports every action.
func (app *Application) perform(action input.Action) error {
	app.logger.Info("action",
		"action", action.Name,
		"eventmap", action.Eventmap,
		"event", action.Event.String(),
		"bindings", action.Args.Bound.String())

	switch action.Name {
	case ActionQuit:
		return ErrQuit
	case ActionClear:
		app.status("")
		return nil
	case ActionHelp:
		app.status(app.categorySummary() + " | " + app.Summary())
		return nil
	case ActionTrace:
		if app.toggleTrace() {
			app.status("trace on")
		} else {
			app.status("trace off")
		}
		return nil
	}

	line := action.Name
	if action.Args.Bound.Len() > 0 {
		line += " " + action.Args.Bound.String()
	}
	if len(action.Args.Fixed) > 0 {
		line += fmt.Sprintf(" %v", action.Args.Fixed)
	}
	where := action.Eventmap
	if others := app.shadowed(action.Event, action.Eventmap); len(others) > 0 {
		where += "; shadows " + strings.Join(others, ", ")
	}
	app.status(fmt.Sprintf("%s  <- %s [%s]", line, action.Event, where))
	return nil
}

// status updates the status line when a backend is attached.
func (app *Application) status(text string) {
	if b := app.backend; b != nil && app.running.Load() {
		b.ShowStatus(text)
	}
}

// Shutdown ends a running session. It is safe to call more than once and
// from any goroutine.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() {
		close(app.done)
		if app.backend != nil {
			app.backend.Shutdown()
		}
	})
}

// Close releases the input handler.
func (app *Application) Close() {
	app.handler.Close()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}
