package eventmap

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/pattern"
)

// Resolution is the outcome of resolving an event against a Registry.
type Resolution struct {
	// Eventmap is the name of the eventmap holding the matching binding.
	Eventmap string

	// Source is where that eventmap was defined.
	Source string

	// Index is the binding's position within its eventmap.
	Index int

	// Binding is the matching binding. Its Args map is shared and must not
	// be modified.
	Binding Binding

	// Pattern is the parsed pattern of the binding.
	Pattern pattern.Pattern

	// Bindings holds the values the pattern bound from the event.
	Bindings pattern.Bindings
}

// Action returns the bound action name.
func (r Resolution) Action() string { return r.Binding.Action }

// Registry holds compiled eventmaps and resolves events against them.
//
// Eventmaps are consulted by descending priority, then by registration
// order. Resolve reads an immutable snapshot and never blocks; Register and
// Unregister publish a new snapshot.
type Registry struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[snapshot]
	seq  int
}

type entry struct {
	compiled *Compiled
	seq      int
}

type snapshot struct {
	entries []entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.snap.Store(&snapshot{})
	return r
}

// Register compiles m and adds it to the registry. An eventmap with the same
// name is replaced in place, keeping its registration order. On error the
// registry is unchanged.
func (r *Registry) Register(m *Eventmap) error {
	if m == nil {
		return fmt.Errorf("cannot register nil eventmap")
	}
	c, err := Compile(m)
	if err != nil {
		return err
	}
	r.RegisterCompiled(c)
	return nil
}

// RegisterCompiled adds an already compiled eventmap.
func (r *Registry) RegisterCompiled(c *Compiled) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()
	entries := make([]entry, 0, len(old.entries)+1)
	replaced := false
	for _, e := range old.entries {
		if e.compiled.Name() == c.Name() {
			entries = append(entries, entry{compiled: c, seq: e.seq})
			replaced = true
			continue
		}
		entries = append(entries, e)
	}
	if !replaced {
		r.seq++
		entries = append(entries, entry{compiled: c, seq: r.seq})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].compiled.Priority(), entries[j].compiled.Priority()
		if pi != pj {
			return pi > pj
		}
		return entries[i].seq < entries[j].seq
	})

	r.snap.Store(&snapshot{entries: entries})
}

// Unregister removes an eventmap by name. It reports whether one was removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()
	entries := make([]entry, 0, len(old.entries))
	for _, e := range old.entries {
		if e.compiled.Name() != name {
			entries = append(entries, e)
		}
	}
	if len(entries) == len(old.entries) {
		return false
	}
	r.snap.Store(&snapshot{entries: entries})
	return true
}

// Get returns a compiled eventmap by name.
func (r *Registry) Get(name string) (*Compiled, bool) {
	for _, e := range r.snap.Load().entries {
		if e.compiled.Name() == name {
			return e.compiled, true
		}
	}
	return nil, false
}

// Names returns eventmap names in resolution order.
func (r *Registry) Names() []string {
	entries := r.snap.Load().entries
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.compiled.Name()
	}
	return names
}

// Len returns the number of registered eventmaps.
func (r *Registry) Len() int {
	return len(r.snap.Load().entries)
}

// Resolve returns the first matching binding in resolution order.
// The boolean is false when no eventmap matches the event.
func (r *Registry) Resolve(ev event.Event) (Resolution, bool) {
	for _, e := range r.snap.Load().entries {
		if res, ok := e.compiled.Resolve(ev); ok {
			return res, true
		}
	}
	return Resolution{}, false
}

// ResolveAll returns the first matching binding of every eventmap, in
// resolution order. The first element, if any, is what Resolve returns.
func (r *Registry) ResolveAll(ev event.Event) []Resolution {
	var out []Resolution
	for _, e := range r.snap.Load().entries {
		if res, ok := e.compiled.Resolve(ev); ok {
			out = append(out, res)
		}
	}
	return out
}

// Resolve matches ev against this eventmap alone.
func (c *Compiled) Resolve(ev event.Event) (Resolution, bool) {
	m, ok := c.list.Match(ev)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{
		Eventmap: c.name,
		Source:   c.source,
		Index:    m.Index,
		Binding:  c.bindings[m.Index],
		Pattern:  m.Pattern,
		Bindings: m.Bindings,
	}, true
}
