package eventmap

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/key"
)

func TestRegistryBasic(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(New("a").Add("key press 'x'", "a.x")); err != nil {
		t.Fatal(err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d", r.Len())
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("Get(a) failed")
	}
	if !r.Unregister("a") {
		t.Error("Unregister(a) = false")
	}
	if r.Unregister("a") {
		t.Error("second Unregister(a) = true")
	}
	if _, ok := r.Resolve(event.KeyPress('x', key.ModNone)); ok {
		t.Error("resolved against an unregistered eventmap")
	}
}

func TestRegistryRejectsInvalid(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(nil); err == nil {
		t.Error("Register(nil) should fail")
	}
	if err := r.Register(New("bad").Add("key press NOPE-'x'", "a")); err == nil {
		t.Error("Register should reject malformed patterns")
	}
	if r.Len() != 0 {
		t.Errorf("failed registration changed the registry: %v", r.Names())
	}
}

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()
	must := func(m *Eventmap) {
		t.Helper()
		if err := r.Register(m); err != nil {
			t.Fatal(err)
		}
	}

	must(New("low").WithPriority(-5).Add("key press c", "low.any"))
	must(New("first").Add("key press 'x'", "first.x"))
	must(New("second").Add("key press 'x'", "second.x").Add("key press 'y'", "second.y"))
	must(New("high").WithPriority(5).Add("key press 'y'", "high.y"))

	if diff := cmp.Diff([]string{"high", "first", "second", "low"}, r.Names()); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}

	tests := []struct {
		r      rune
		action string
	}{
		{'x', "first.x"},
		{'y', "high.y"},
		{'z', "low.any"},
	}
	for _, tt := range tests {
		res, ok := r.Resolve(event.KeyPress(tt.r, key.ModNone))
		if !ok || res.Action() != tt.action {
			t.Errorf("%q: got %q, %v; want %q", tt.r, res.Action(), ok, tt.action)
		}
	}

	all := r.ResolveAll(event.KeyPress('x', key.ModNone))
	var got []string
	for _, res := range all {
		got = append(got, res.Eventmap+":"+res.Action())
	}
	if diff := cmp.Diff([]string{"first:first.x", "second:second.x", "low:low.any"}, got); diff != "" {
		t.Errorf("ResolveAll (-want +got):\n%s", diff)
	}
}

func TestRegistryReplaceKeepsOrder(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(New("a").Add("key press 'x'", "a.v1"))
	_ = r.Register(New("b").Add("key press 'x'", "b.x"))
	if err := r.Register(New("a").Add("key press 'x'", "a.v2")); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	res, _ := r.Resolve(event.KeyPress('x', key.ModNone))
	if res.Action() != "a.v2" {
		t.Errorf("action = %q, want a.v2", res.Action())
	}
}

func TestRegistryResolveBindings(t *testing.T) {
	r := NewRegistry()
	m := New("mouse").WithSource("test")
	m.AddBinding(NewBinding("resized for w, h", "view.resize").WithArgs(map[string]any{"redraw": true}))
	if err := r.Register(m); err != nil {
		t.Fatal(err)
	}

	res, ok := r.Resolve(event.Resize{Columns: 120, Rows: 40})
	if !ok {
		t.Fatal("no match")
	}
	if res.Eventmap != "mouse" || res.Source != "test" || res.Index != 0 {
		t.Errorf("resolution = %+v", res)
	}
	if w, _ := res.Bindings.Int("w"); w != 120 {
		t.Errorf("w = %d", w)
	}
	if res.Binding.Args["redraw"] != true {
		t.Errorf("args = %v", res.Binding.Args)
	}
	if res.Pattern.String() != "resized for w, h" {
		t.Errorf("pattern = %s", res.Pattern)
	}
}

func TestRegistryConcurrentResolveAndReplace(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(New("m").Add("key press 'x'", "v0"))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				if _, ok := r.Resolve(event.KeyPress('x', key.ModNone)); !ok {
					t.Error("binding disappeared during replace")
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		_ = r.Register(New("m").Add("key press 'x'", "v"))
	}
	close(stop)
	wg.Wait()
}

func TestLoadDefaults(t *testing.T) {
	r := NewRegistry()
	if err := LoadDefaults(r); err != nil {
		t.Fatal(err)
	}
	_ = r.Register(New("user").Add("key press CONTROL-'c'", "user.copy"))

	res, ok := r.Resolve(event.KeyPress('c', key.ModCtrl))
	if !ok || res.Action() != "user.copy" {
		t.Errorf("user eventmap should override defaults, got %q", res.Action())
	}
}
