package lua

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/evmatch/internal/input/eventmap"
	"github.com/dshills/evmatch/internal/input/pattern"
)

// ModuleName is the global table scripts use to register bindings.
const ModuleName = "evmatch"

// scriptModule collects the bindings a script registers.
type scriptModule struct {
	m *eventmap.Eventmap

	// bindErr is the last pattern bind rejected.
	bindErr error
}

// LoadEventmap runs the Lua script at path and returns the eventmap it
// builds. The eventmap is named after the file unless the script calls
// evmatch.name, and its source is "lua:<file>".
//
// Script API:
//
//	evmatch.bind(pattern, action [, {desc=, category=, args={...}}])
//	evmatch.name(name)
//	evmatch.priority(n)
//	evmatch.check(pattern) -> canonical pattern | nil, message
//	evmatch.list() -> {{pattern=, action=, desc=, category=}, ...}
//
// bind raises a Lua error for a malformed pattern, so the script fails at
// the offending line.
func LoadEventmap(ctx context.Context, path string, opts ...StateOption) (*eventmap.Eventmap, error) {
	base := filepath.Base(path)
	m := eventmap.New(strings.TrimSuffix(base, filepath.Ext(base))).WithSource("lua:" + base)

	s := NewState(opts...)
	defer s.Close()
	mod := installModule(s, m)

	if err := s.DoFile(ctx, path); err != nil {
		return nil, mod.runError(path, err)
	}
	return m, nil
}

// LoadEventmapString is LoadEventmap for an in-memory script.
func LoadEventmapString(ctx context.Context, name, code string, opts ...StateOption) (*eventmap.Eventmap, error) {
	m := eventmap.New(name).WithSource("lua:" + name)

	s := NewState(opts...)
	defer s.Close()
	mod := installModule(s, m)

	if err := s.DoString(ctx, code); err != nil {
		return nil, mod.runError(name, err)
	}
	return m, nil
}

func installModule(s *State, m *eventmap.Eventmap) *scriptModule {
	mod := &scriptModule{m: m}
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"bind":     mod.bind,
		"name":     mod.name,
		"priority": mod.priority,
		"check":    mod.check,
		"list":     mod.list,
	})
	return mod
}

// runError reports a failed run. A script stopped by a rejected pattern
// returns the *eventmap.BindingError so callers can match the definition
// error.
func (mod *scriptModule) runError(source string, err error) error {
	if mod.bindErr != nil && !errors.Is(err, ErrExecutionTimeout) {
		return fmt.Errorf("running %s: %w", source, mod.bindErr)
	}
	return fmt.Errorf("running %s: %w", source, err)
}

// bind(pattern, action, opts?) -> nil
// opts can include: desc, category, args
func (mod *scriptModule) bind(L *lua.LState) int {
	src := L.CheckString(1)
	action := L.CheckString(2)

	if action == "" {
		L.ArgError(2, "action cannot be empty")
		return 0
	}
	if _, err := pattern.Parse(src); err != nil {
		var bindErr error = &eventmap.BindingError{
			Eventmap: mod.m.Name,
			Index:    len(mod.m.Bindings),
			Pattern:  src,
			Err:      err,
		}
		if where := L.Where(1); where != "" {
			bindErr = fmt.Errorf("%s %w", where, bindErr)
		}
		mod.bindErr = bindErr
		L.ArgError(1, err.Error())
		return 0
	}

	b := eventmap.NewBinding(src, action)
	if L.GetTop() >= 3 {
		opts := L.CheckTable(3)
		b.Description = tableString(opts, "desc")
		b.Category = tableString(opts, "category")
		if args, ok := opts.RawGetString("args").(*lua.LTable); ok {
			if m, ok := ToGoValue(args).(map[string]any); ok {
				b.Args = m
			} else {
				L.ArgError(3, "args must be a table with string keys")
				return 0
			}
		}
	}

	mod.m.AddBinding(b)
	return 0
}

// name(name) -> nil
func (mod *scriptModule) name(L *lua.LState) int {
	n := L.CheckString(1)
	if n == "" {
		L.ArgError(1, "name cannot be empty")
		return 0
	}
	mod.m.Name = n
	return 0
}

// priority(n) -> nil
func (mod *scriptModule) priority(L *lua.LState) int {
	mod.m.Priority = L.CheckInt(1)
	return 0
}

// check(pattern) -> canonical string, or nil and an error message
func (mod *scriptModule) check(L *lua.LState) int {
	p, err := pattern.Parse(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LString(p.String()))
	return 1
}

// list() -> {bindings...}
func (mod *scriptModule) list(L *lua.LState) int {
	result := L.NewTable()
	for _, b := range mod.m.Bindings {
		tbl := L.NewTable()
		L.SetField(tbl, "pattern", lua.LString(b.Pattern))
		L.SetField(tbl, "action", lua.LString(b.Action))
		L.SetField(tbl, "desc", lua.LString(b.Description))
		L.SetField(tbl, "category", lua.LString(b.Category))
		if b.Args != nil {
			L.SetField(tbl, "args", ToLuaValue(L, b.Args))
		}
		result.Append(tbl)
	}
	L.Push(result)
	return 1
}
