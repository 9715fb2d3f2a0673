package mouse

import (
	"sync"

	"github.com/dshills/evmatch/internal/input/key"
)

// Held is the set of buttons held down at the time of a snapshot.
type Held uint8

const (
	HeldLeft Held = 1 << iota
	HeldRight
	HeldMiddle
)

// heldOrder lists buttons in the order transitions are emitted.
var heldOrder = [...]struct {
	bit    Held
	button Button
}{
	{HeldLeft, ButtonLeft},
	{HeldRight, ButtonRight},
	{HeldMiddle, ButtonMiddle},
}

// Snapshot is one raw mouse report from a terminal library.
type Snapshot struct {
	Column int
	Row    int

	// Held are the buttons currently down.
	Held Held

	// Wheel is one of the scroll kinds, or KindNone.
	Wheel Kind

	Modifiers key.Modifier
}

// Tracker converts button-mask snapshots into mouse transitions.
// The zero value is ready to use.
type Tracker struct {
	mu sync.Mutex

	// held are the buttons down after the previous snapshot.
	held Held

	// dragButton is the button that started the current drag.
	dragButton Button
}

// Update compares s with the previous snapshot and appends the resulting
// events to dst. Scroll comes first, then presses, then releases. When no
// button changed, a held button yields Drag and no button yields Moved.
func (t *Tracker) Update(dst []Event, s Snapshot) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	base := Event{Column: s.Column, Row: s.Row, Modifiers: s.Modifiers}

	if s.Wheel.IsScroll() {
		ev := base
		ev.Kind = s.Wheel
		dst = append(dst, ev)
	}

	pressed := s.Held &^ t.held
	released := t.held &^ s.Held

	for _, h := range heldOrder {
		if pressed&h.bit == 0 {
			continue
		}
		ev := base
		ev.Kind = Down
		ev.Button = h.button
		dst = append(dst, ev)
		if t.dragButton == ButtonNone {
			t.dragButton = h.button
		}
	}

	for _, h := range heldOrder {
		if released&h.bit == 0 {
			continue
		}
		ev := base
		ev.Kind = Up
		ev.Button = h.button
		dst = append(dst, ev)
		if t.dragButton == h.button {
			t.dragButton = ButtonNone
		}
	}

	t.held = s.Held
	if t.dragButton == ButtonNone {
		t.dragButton = t.firstHeld()
	}

	if pressed != 0 || released != 0 || s.Wheel.IsScroll() {
		return dst
	}

	ev := base
	if t.held != 0 {
		ev.Kind = Drag
		ev.Button = t.dragButton
	} else {
		ev.Kind = Moved
	}
	return append(dst, ev)
}

// Reset forgets all held buttons.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.held = 0
	t.dragButton = ButtonNone
}

func (t *Tracker) firstHeld() Button {
	for _, h := range heldOrder {
		if t.held&h.bit != 0 {
			return h.button
		}
	}
	return ButtonNone
}
