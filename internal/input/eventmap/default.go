package eventmap

// DefaultPriority is the priority of the built-in eventmap. User eventmaps
// registered with the default priority of 0 take precedence over it.
const DefaultPriority = -100

// LoadDefaults registers the built-in eventmap.
func LoadDefaults(r *Registry) error {
	return r.Register(Default())
}

// Default returns the built-in bindings of the event tester.
func Default() *Eventmap {
	return &Eventmap{
		Name:     "default",
		Priority: DefaultPriority,
		Source:   "default",
		Bindings: []Binding{
			// Application
			{Pattern: "key press CONTROL-'c'", Action: "app.quit", Description: "Quit", Category: "Application"},
			{Pattern: "key press CONTROL-'q'", Action: "app.quit", Description: "Quit", Category: "Application"},
			{Pattern: "keycode press F(1)", Action: "app.help", Description: "Show bindings", Category: "Application"},
			{Pattern: "keycode press F(2)", Action: "app.trace", Description: "Toggle event tracing", Category: "Application"},
			{Pattern: "keycode press CONTROL-Esc", Action: "app.clear", Description: "Clear the event log", Category: "Application"},

			// Keyboard
			{Pattern: "keycode press ANY-Enter", Action: "key.enter", Description: "Enter", Category: "Keyboard"},
			{Pattern: "keycode press ANY-Up", Action: "key.arrow", Args: map[string]any{"direction": "up"}, Category: "Keyboard"},
			{Pattern: "keycode press ANY-Down", Action: "key.arrow", Args: map[string]any{"direction": "down"}, Category: "Keyboard"},
			{Pattern: "keycode press ANY-Left", Action: "key.arrow", Args: map[string]any{"direction": "left"}, Category: "Keyboard"},
			{Pattern: "keycode press ANY-Right", Action: "key.arrow", Args: map[string]any{"direction": "right"}, Category: "Keyboard"},
			{Pattern: "key press ANY-ch", Action: "key.char", Description: "Any character", Category: "Keyboard"},
			{Pattern: "key release ANY-ch", Action: "key.release", Description: "Character released", Category: "Keyboard"},

			// Mouse
			{Pattern: "mouse down Left for column, row", Action: "mouse.click", Description: "Left click", Category: "Mouse"},
			{Pattern: "mouse drag Left for column, row", Action: "mouse.drag", Description: "Left drag", Category: "Mouse"},
			{Pattern: "mouse down Right for column, row", Action: "mouse.menu", Description: "Right click", Category: "Mouse"},
			{Pattern: "scroll ANY up", Action: "view.scroll", Args: map[string]any{"lines": -3}, Category: "Mouse"},
			{Pattern: "scroll ANY down", Action: "view.scroll", Args: map[string]any{"lines": 3}, Category: "Mouse"},
			{Pattern: "mouse any for event", Action: "mouse.other", Description: "Other mouse events", Category: "Mouse"},

			// Terminal
			{Pattern: "resized for columns, rows", Action: "view.resize", Description: "Terminal resized", Category: "Terminal"},
			{Pattern: "focus_gained", Action: "app.focus", Args: map[string]any{"focused": true}, Category: "Terminal"},
			{Pattern: "focus_lost", Action: "app.focus", Args: map[string]any{"focused": false}, Category: "Terminal"},
			{Pattern: "paste text", Action: "edit.paste", Description: "Bracketed paste", Category: "Terminal"},
		},
	}
}
