package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/evmatch/internal/input/event"
)

var (
	_ Backend = (*Terminal)(nil)
	_ Backend = (*NullBackend)(nil)
)

// statusStyle is used for the status line.
var statusStyle = tcell.StyleDefault.Reverse(true)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen

	mu     sync.Mutex
	status string
	closed bool

	// pending is only touched by PollEvent.
	translator Translator
	pending    []event.Event
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	t.screen.Clear()

	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PollEvent blocks until tcell reports an event that translates to at least
// one input event. Events that translate to nothing, such as the start of a
// paste, are consumed silently.
func (t *Terminal) PollEvent() (event.Event, bool) {
	for len(t.pending) == 0 {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil, false
		}
		if rs, ok := ev.(*tcell.EventResize); ok {
			t.redraw(rs)
		}
		t.pending = t.translator.Translate(t.pending, ev)
	}

	ev := t.pending[0]
	t.pending = t.pending[1:]
	return ev, true
}

// PostEvent queues ev behind the events already pending in tcell.
func (t *Terminal) PostEvent(ev event.Event) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(ev)) // best-effort; event queue may be full
}

// ShowStatus draws text on the bottom row.
func (t *Terminal) ShowStatus(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status = text
	if t.closed {
		return
	}
	t.drawStatus()
	t.screen.Show()
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse()
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
	t.translator.tracker.Reset()
}

func (t *Terminal) EnablePaste() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnablePaste()
}

func (t *Terminal) DisablePaste() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisablePaste()
}

func (t *Terminal) EnableFocus() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableFocus()
}

func (t *Terminal) DisableFocus() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableFocus()
}

func (t *Terminal) redraw(*tcell.EventResize) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	t.drawStatus()
	t.screen.Sync()
}

// drawStatus renders the status line grapheme by grapheme so that wide and
// combined characters take the right number of cells. The caller holds mu.
func (t *Terminal) drawStatus() {
	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return
	}
	row := height - 1

	x := 0
	rest := t.status
	state := -1
	for len(rest) > 0 && x < width {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		runes := []rune(cluster)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		t.screen.SetContent(x, row, runes[0], runes[1:], statusStyle)
		x += w
	}
	for ; x < width; x++ {
		t.screen.SetContent(x, row, ' ', nil, statusStyle)
	}
}
