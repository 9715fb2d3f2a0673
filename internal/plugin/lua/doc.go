// Package lua lets Lua scripts define eventmaps.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. Functions that load code (dofile, loadfile,
// load, loadstring, require) are removed, and each run is bounded by a
// timeout.
//
// A script registers bindings through the evmatch table:
//
//	evmatch.name("mouse")
//	evmatch.priority(10)
//
//	evmatch.bind("mouse down Left for col, row", "cursor.place", {category = "Mouse"})
//	evmatch.bind("scroll CONTROL up", "view.zoom", {args = {step = 1}})
//
//	for i = 1, 12 do
//	    evmatch.bind(string.format("keycode press F(%d)", i), "tab.select", {args = {index = i}})
//	end
//
// Patterns are validated when bind is called, so a malformed pattern fails
// the script at the offending line.
//
//	m, err := lua.LoadEventmap(ctx, "mouse.lua")
//	if err != nil {
//	    return err
//	}
//	registry.Register(m)
package lua
