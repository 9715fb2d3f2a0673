package eventmap

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/key"
)

const tomlEventmap = `
name = "vim"
priority = 10

[[bindings]]
pattern = "key press 'j'"
action = "cursor.down"
category = "Movement"

[[bindings]]
pattern = "scroll CONTROL up"
action = "view.zoom"
args = { step = 2 }
`

const yamlEventmap = `
name: vim
priority: 10
bindings:
  - pattern: "key press 'j'"
    action: cursor.down
    category: Movement
  - pattern: scroll CONTROL up
    action: view.zoom
    args:
      step: 2
`

const jsonEventmap = `{
  "name": "vim",
  "priority": 10,
  "bindings": [
    {"pattern": "key press 'j'", "action": "cursor.down", "category": "Movement"},
    {"pattern": "scroll CONTROL up", "action": "view.zoom", "args": {"step": 2}}
  ]
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderFormats(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatTOML, tomlEventmap},
		{FormatYAML, yamlEventmap},
		{FormatJSON, jsonEventmap},
	}

	l := NewLoader(discardLogger())
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			m, err := l.LoadReader(strings.NewReader(tt.src), tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if m.Name != "vim" || m.Priority != 10 || len(m.Bindings) != 2 {
				t.Fatalf("got %+v", m)
			}
			if m.Bindings[0].Category != "Movement" || m.Bindings[1].Action != "view.zoom" {
				t.Errorf("bindings = %+v", m.Bindings)
			}
			if m.Bindings[1].Args["step"] == nil {
				t.Error("args not decoded")
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestLoaderRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format Format
		src    string
	}{
		{FormatTOML, "name = \"typo\"\n\n[[bindings]]\npatern = \"key press 'j'\"\naction = \"cursor.down\"\n"},
		{FormatYAML, "name: typo\nbindings:\n  - patern: key press 'j'\n    action: cursor.down\n"},
		{FormatJSON, `{"name": "typo", "bindings": [{"patern": "key press 'j'", "action": "cursor.down"}]}`},
	}

	l := NewLoader(discardLogger())
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := l.LoadReader(strings.NewReader(tt.src), tt.format)
			if err == nil {
				t.Fatal("expected error for unknown key")
			}
			if errors.Is(err, ErrEmptyPattern) {
				t.Errorf("err = %v, want an unknown-key error", err)
			}
			if !strings.Contains(err.Error(), "patern") {
				t.Errorf("error %q does not name the unknown key", err)
			}
		})
	}
}

func TestLoaderUnknownFormat(t *testing.T) {
	l := NewLoader(discardLogger())
	if _, err := l.LoadReader(strings.NewReader(""), "ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v", err)
	}
	if _, err := l.LoadFile("map.ini"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v", err)
	}
}

func TestLoadFileDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mouse.yaml")
	src := "bindings:\n  - pattern: mouse any for m\n    action: mouse.log\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := NewLoader(discardLogger()).LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "mouse" {
		t.Errorf("Name = %q, want file base name", m.Name)
	}
	if m.Source != "file:"+path {
		t.Errorf("Source = %q", m.Source)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":     jsonEventmap,
		"a.toml":     "name = \"a\"\n[[bindings]]\npattern = \"focus_lost\"\naction = \"x\"\n",
		"broken.yml": "name: [",
		"notes.txt":  "ignored",
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.toml"), 0o755); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(discardLogger())
	maps, err := l.LoadDir(dir)
	if err == nil {
		t.Error("expected an error for broken.yml")
	}

	var names []string
	for _, m := range maps {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"a", "vim"}, names); diff != "" {
		t.Errorf("loaded (-want +got):\n%s", diff)
	}

	l.AddSearchPath(dir)
	l.AddSearchPath(filepath.Join(dir, "missing"))
	r := NewRegistry()
	if err := l.LoadAndRegister(r); err != nil {
		t.Fatal(err)
	}
	if res, ok := r.Resolve(event.KeyPress('j', key.ModNone)); !ok || res.Action() != "cursor.down" {
		t.Errorf("resolve j = %q, %v", res.Action(), ok)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	m := New("rt").WithPriority(2)
	m.AddBinding(NewBinding("mouse down Left for x, y", "mouse.click").WithDescription("Click"))
	m.AddBinding(NewBinding("paste text", "edit.paste").WithCategory("Edit"))

	l := NewLoader(discardLogger())
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		var buf bytes.Buffer
		if err := Encode(&buf, m, format); err != nil {
			t.Fatalf("%s: Encode: %v", format, err)
		}
		got, err := l.LoadReader(&buf, format)
		if err != nil {
			t.Fatalf("%s: LoadReader: %v", format, err)
		}
		if diff := cmp.Diff(m, got); diff != "" {
			t.Errorf("%s: round trip (-want +got):\n%s", format, diff)
		}
	}
}

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.toml")
	m := New("saved").Add("focus_gained", "app.focus")
	if err := m.SaveFile(path); err != nil {
		t.Fatal(err)
	}

	got, err := NewLoader(discardLogger()).LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "saved" || len(got.Bindings) != 1 || got.Bindings[0].Action != "app.focus" {
		t.Errorf("got %+v", got)
	}
}
