// Package mouse provides the mouse half of the raw input vocabulary.
//
// # Core Types
//
// Event represents one mouse event with its kind, button, cell position and
// the keyboard modifiers held at the time:
//
//	event := mouse.Event{
//	    Kind:      mouse.Down,
//	    Button:    mouse.ButtonLeft,
//	    Column:    10,
//	    Row:       4,
//	    Modifiers: key.ModNone,
//	}
//
// Down, Up and Drag carry a button. Moved and the four scroll kinds do not.
//
// # Tracker
//
// Many terminal libraries only report which buttons are currently held.
// Tracker turns a stream of such snapshots into Down, Up, Drag, Moved and
// scroll transitions:
//
//	var tr mouse.Tracker
//	events := tr.Update(nil, mouse.Snapshot{Column: 3, Row: 7, Held: mouse.HeldLeft})
//	// events == []mouse.Event{{Kind: mouse.Down, Button: mouse.ButtonLeft, Column: 3, Row: 7}}
//
// # Thread Safety
//
// Tracker is safe for concurrent use. State mutations are guarded by a mutex.
package mouse
