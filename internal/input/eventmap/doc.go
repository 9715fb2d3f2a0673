// Package eventmap provides data-driven event binding tables for evmatch.
//
// An eventmap maps textual event patterns to named actions. Eventmaps are
// written in TOML, YAML or JSON, built in Go, or registered from Lua scripts,
// and are compiled into pattern lists before use, so a malformed pattern is
// reported when the eventmap is loaded rather than when an event arrives.
//
// # Key Concepts
//
// Eventmap: A named, ordered table of bindings with a priority.
//
// Binding: Maps one pattern to an action with optional fixed arguments.
//
// Registry: Holds compiled eventmaps and resolves events against them.
//
// # Resolution Order
//
// Eventmaps are consulted by descending priority, then registration order.
// Within an eventmap the first matching binding wins. An event no binding
// matches resolves to nothing; what to do with it is up to the caller.
//
// # File Format
//
//	name = "mouse"
//	priority = 10
//
//	[[bindings]]
//	pattern = "mouse down Left for col, row"
//	action = "cursor.place"
//	category = "Mouse"
//
//	[[bindings]]
//	pattern = "scroll CONTROL up"
//	action = "view.zoom"
//	args = { step = 1 }
//
// # Usage
//
//	registry := eventmap.NewRegistry()
//	if err := eventmap.LoadDefaults(registry); err != nil {
//	    return err
//	}
//
//	if res, ok := registry.Resolve(ev); ok {
//	    // Execute res.Action() with res.Binding.Args and res.Bindings
//	}
package eventmap
