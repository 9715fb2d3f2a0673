package pattern

import (
	"fmt"

	"github.com/dshills/evmatch/internal/input/event"
)

// Result is the outcome of a successful List match.
type Result struct {
	// Index is the position of the matching pattern in the list.
	Index int

	// Pattern is the matching pattern.
	Pattern Pattern

	// Bindings holds the values the pattern bound.
	Bindings Bindings
}

// List is an ordered, immutable sequence of patterns evaluated
// first-match-wins. It is safe for concurrent use.
type List struct {
	patterns []Pattern
}

// NewList validates every pattern and returns a list holding a copy of them.
func NewList(patterns ...Pattern) (*List, error) {
	for i, p := range patterns {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
	}
	return &List{patterns: append([]Pattern(nil), patterns...)}, nil
}

// MustList is like NewList but panics on error.
func MustList(patterns ...Pattern) *List {
	l, err := NewList(patterns...)
	if err != nil {
		panic(err)
	}
	return l
}

// ParseList parses each source string and builds a list from the results.
func ParseList(sources ...string) (*List, error) {
	patterns := make([]Pattern, 0, len(sources))
	for i, src := range sources {
		p, err := Parse(src)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		patterns = append(patterns, p)
	}
	return &List{patterns: patterns}, nil
}

// Len returns the number of patterns.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.patterns)
}

// At returns the i-th pattern.
func (l *List) At(i int) Pattern {
	return l.patterns[i]
}

// Match evaluates the patterns in order and returns the first match.
// The boolean is false when no pattern matches.
func (l *List) Match(ev event.Event) (Result, bool) {
	if l == nil {
		return Result{}, false
	}
	for i, p := range l.patterns {
		if b, ok := p.Match(ev); ok {
			return Result{Index: i, Pattern: p, Bindings: b}, true
		}
	}
	return Result{}, false
}

// Handler receives a matched event together with its bindings.
type Handler func(ev event.Event, b Bindings)

// Case is one arm of a Switch.
type Case struct {
	Pattern Pattern
	Handler Handler
}

// On pairs a pattern with a handler.
func On(p Pattern, h Handler) Case {
	return Case{Pattern: p, Handler: h}
}

// Switch dispatches events to the handler of the first matching arm.
type Switch struct {
	list     *List
	handlers []Handler
	fallback func(ev event.Event)
}

// NewSwitch builds a switch from its arms in evaluation order.
func NewSwitch(cases ...Case) (*Switch, error) {
	patterns := make([]Pattern, len(cases))
	handlers := make([]Handler, len(cases))
	for i, c := range cases {
		if c.Handler == nil {
			return nil, fmt.Errorf("case %d (%s): nil handler", i, c.Pattern)
		}
		patterns[i] = c.Pattern
		handlers[i] = c.Handler
	}

	list, err := NewList(patterns...)
	if err != nil {
		return nil, err
	}
	return &Switch{list: list, handlers: handlers}, nil
}

// WithDefault returns a copy of s that calls fn for events no arm matches.
func (s *Switch) WithDefault(fn func(ev event.Event)) *Switch {
	cp := *s
	cp.fallback = fn
	return &cp
}

// Dispatch runs the first matching arm for ev, or the default arm.
// It reports whether an arm other than the default handled the event.
func (s *Switch) Dispatch(ev event.Event) bool {
	r, ok := s.list.Match(ev)
	if !ok {
		if s.fallback != nil {
			s.fallback(ev)
		}
		return false
	}
	s.handlers[r.Index](ev, r.Bindings)
	return true
}
