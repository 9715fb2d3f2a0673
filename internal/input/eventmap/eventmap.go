package eventmap

import (
	"errors"
	"fmt"

	"github.com/dshills/evmatch/internal/input/pattern"
)

// Eventmap errors.
var (
	ErrEmptyName    = errors.New("eventmap has no name")
	ErrEmptyPattern = errors.New("empty pattern")
	ErrEmptyAction  = errors.New("empty action")
)

// Eventmap is a named, ordered table of bindings. Within one eventmap the
// first binding whose pattern matches an event wins.
type Eventmap struct {
	// Name is the eventmap identifier.
	Name string

	// Priority orders eventmaps in a Registry. Higher priority is consulted
	// first. Default is 0.
	Priority int

	// Source indicates where this eventmap was defined.
	// Examples: "default", "file:/home/u/.config/evmatch/vim.toml", "lua:mouse.lua"
	Source string

	// Bindings are the pattern-to-action mappings in evaluation order.
	Bindings []Binding
}

// New creates an empty eventmap with the given name.
func New(name string) *Eventmap {
	return &Eventmap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// WithPriority sets the priority for this eventmap.
func (m *Eventmap) WithPriority(priority int) *Eventmap {
	m.Priority = priority
	return m
}

// WithSource sets the source for this eventmap.
func (m *Eventmap) WithSource(source string) *Eventmap {
	m.Source = source
	return m
}

// Add appends a binding.
func (m *Eventmap) Add(pattern, action string) *Eventmap {
	m.Bindings = append(m.Bindings, NewBinding(pattern, action))
	return m
}

// AddBinding appends a fully configured binding.
func (m *Eventmap) AddBinding(b Binding) *Eventmap {
	m.Bindings = append(m.Bindings, b)
	return m
}

// Validate checks the eventmap without keeping the compiled form.
func (m *Eventmap) Validate() error {
	_, err := Compile(m)
	return err
}

// Clone creates a deep copy of the eventmap.
func (m *Eventmap) Clone() *Eventmap {
	clone := &Eventmap{
		Name:     m.Name,
		Priority: m.Priority,
		Source:   m.Source,
		Bindings: make([]Binding, len(m.Bindings)),
	}
	for i, b := range m.Bindings {
		clone.Bindings[i] = b.clone()
	}
	return clone
}

// BindingError reports a binding that could not be compiled.
type BindingError struct {
	Eventmap string
	Index    int
	Pattern  string
	Err      error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("eventmap %q binding %d (%s): %v", e.Eventmap, e.Index, e.Pattern, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// Compiled is an eventmap whose patterns have been parsed. It is immutable
// and safe for concurrent use.
type Compiled struct {
	name     string
	priority int
	source   string
	bindings []Binding
	list     *pattern.List
}

// Compile parses every binding pattern of m. Errors are *BindingError
// values wrapping the pattern definition error.
func Compile(m *Eventmap) (*Compiled, error) {
	if m == nil || m.Name == "" {
		return nil, ErrEmptyName
	}

	patterns := make([]pattern.Pattern, len(m.Bindings))
	for i, b := range m.Bindings {
		fail := func(err error) error {
			return &BindingError{Eventmap: m.Name, Index: i, Pattern: b.Pattern, Err: err}
		}
		if b.Pattern == "" {
			return nil, fail(ErrEmptyPattern)
		}
		if b.Action == "" {
			return nil, fail(ErrEmptyAction)
		}
		p, err := pattern.Parse(b.Pattern)
		if err != nil {
			return nil, fail(err)
		}
		patterns[i] = p
	}

	list, err := pattern.NewList(patterns...)
	if err != nil {
		return nil, fmt.Errorf("eventmap %q: %w", m.Name, err)
	}

	c := m.Clone()
	return &Compiled{
		name:     c.Name,
		priority: c.Priority,
		source:   c.Source,
		bindings: c.Bindings,
		list:     list,
	}, nil
}

// Name returns the eventmap name.
func (c *Compiled) Name() string { return c.name }

// Priority returns the eventmap priority.
func (c *Compiled) Priority() int { return c.priority }

// Source returns where the eventmap was defined.
func (c *Compiled) Source() string { return c.source }

// Len returns the number of bindings.
func (c *Compiled) Len() int { return len(c.bindings) }

// Binding returns the i-th binding.
func (c *Compiled) Binding(i int) Binding { return c.bindings[i] }

// Pattern returns the parsed pattern of the i-th binding.
func (c *Compiled) Pattern(i int) pattern.Pattern { return c.list.At(i) }

// Bindings returns a copy of the bindings.
func (c *Compiled) Bindings() []Binding {
	out := make([]Binding, len(c.bindings))
	for i, b := range c.bindings {
		out[i] = b.clone()
	}
	return out
}
