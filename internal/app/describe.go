package app

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/dshills/evmatch/internal/input"
	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/eventmap"
)

// WriteBindings lists every eventmap in resolution order with its bindings
// grouped by category.
func (app *Application) WriteBindings(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range app.registry.Names() {
		c, ok := app.registry.Get(name)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t(priority %d, %s)\n", c.Name(), c.Priority(), c.Source())
		for _, cat := range eventmap.GroupByCategory(c.Bindings()) {
			fmt.Fprintf(tw, "  %s\n", cat.Name)
			for _, b := range cat.Bindings {
				fmt.Fprintf(tw, "    %s\t%s\t%s\n", b.Pattern, b.Action, b.Description)
			}
		}
	}
	return tw.Flush()
}

// categorySummary counts the bindings of every eventmap per category, in
// first-seen order: "Application(5) Mouse(6)".
func (app *Application) categorySummary() string {
	var all []eventmap.Binding
	for _, name := range app.registry.Names() {
		if c, ok := app.registry.Get(name); ok {
			all = append(all, c.Bindings()...)
		}
	}

	parts := make([]string, 0, 8)
	for _, cat := range eventmap.GroupByCategory(all) {
		parts = append(parts, fmt.Sprintf("%s(%d)", cat.Name, len(cat.Bindings)))
	}
	return strings.Join(parts, " ")
}

// shadowed returns the eventmaps below the winning one that also match ev.
func (app *Application) shadowed(ev event.Event, winner string) []string {
	var names []string
	for _, res := range app.registry.ResolveAll(ev) {
		if res.Eventmap != winner {
			names = append(names, res.Eventmap)
		}
	}
	return names
}

// traceHook logs every event before it is resolved.
type traceHook struct {
	logger *slog.Logger
}

func (h *traceHook) PreEvent(ev event.Event) bool {
	h.logger.Info("event", "type", ev.Type().String(), "event", ev.String())
	return false
}

func (h *traceHook) PreAction(*input.Action) bool { return false }

// toggleTrace installs or removes the trace hook and reports the new state.
func (app *Application) toggleTrace() bool {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.trace != nil {
		app.handler.RemoveHook(app.trace)
		app.trace = nil
		return false
	}
	app.trace = &traceHook{logger: app.logger}
	app.handler.AddHook(app.trace)
	return true
}

// Tracing reports whether event tracing is on.
func (app *Application) Tracing() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.trace != nil
}
