package lua

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lua "github.com/yuin/gopher-lua"
)

func TestStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "package", "dofile", "loadfile", "load", "loadstring", "require", "module"} {
		if got := s.GetGlobal(name); got != lua.LNil {
			t.Errorf("global %q = %v, want nil", name, got)
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", "print"} {
		if got := s.GetGlobal(name); got == lua.LNil {
			t.Errorf("global %q missing", name)
		}
	}
}

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(context.Background(), `x = string.upper("ab") .. math.floor(2.5)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := s.GetGlobal("x").String(); got != "AB2" {
		t.Errorf("x = %q, want %q", got, "AB2")
	}
}

func TestStateRequireUnavailable(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `require("os")`)
	if err == nil {
		t.Fatal("require succeeded in sandbox")
	}
}

func TestStateTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	start := time.Now()
	err := s.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("err = %v, want ErrExecutionTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %v", elapsed)
	}
}

func TestStateCancelledContext(t *testing.T) {
	s := NewState(WithExecutionTimeout(0))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if err := s.DoString(ctx, `while true do end`); !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("err = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateClosed(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed = false after Close")
	}
	if err := s.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("err = %v, want ErrStateClosed", err)
	}
	if got := s.GetGlobal("x"); got != lua.LNil {
		t.Errorf("GetGlobal after Close = %v", got)
	}
}

func TestStateRegisterModule(t *testing.T) {
	s := NewState()
	defer s.Close()

	s.RegisterModule("util", map[string]lua.LGFunction{
		"double": func(L *lua.LState) int {
			L.Push(lua.LNumber(L.CheckInt(1) * 2))
			return 1
		},
	})
	if err := s.DoString(context.Background(), `y = util.double(21)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if got := s.GetGlobal("y").String(); got != "42" {
		t.Errorf("y = %s, want 42", got)
	}
}

func TestToGoValue(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `
		seq = {1, "two", true}
		rec = {name = "x", n = 1.5, nested = {3}}
		cyc = {}
		cyc.self = cyc
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	tests := []struct {
		global string
		want   any
	}{
		{"seq", []any{int64(1), "two", true}},
		{"rec", map[string]any{"name": "x", "n": 1.5, "nested": []any{int64(3)}}},
		{"cyc", map[string]any{"self": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.global, func(t *testing.T) {
			got := ToGoValue(s.GetGlobal(tt.global))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToGoValue mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToLuaValue(t *testing.T) {
	s := NewState()
	defer s.Close()

	in := map[string]any{
		"lines": 3,
		"dir":   "up",
		"list":  []any{"a", int64(2)},
		"on":    true,
	}
	s.L.SetGlobal("v", ToLuaValue(s.L, in))

	got := ToGoValue(s.GetGlobal("v"))
	want := map[string]any{
		"lines": int64(3),
		"dir":   "up",
		"list":  []any{"a", int64(2)},
		"on":    true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if got := ToLuaValue(s.L, struct{ A int }{1}).String(); !strings.Contains(got, "1") {
		t.Errorf("fallback conversion = %q", got)
	}
}
