package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Log.Level != "info" || c.Log.Format != "text" {
		t.Errorf("Log = %+v", c.Log)
	}
	if !c.Input.Mouse || !c.Input.Paste || !c.Input.Focus {
		t.Errorf("Input = %+v, want all enabled", c.Input)
	}
	if c.Eventmaps.Debounce.Duration != 100*time.Millisecond {
		t.Errorf("Debounce = %v", c.Eventmaps.Debounce)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[input]
paste = false

[eventmaps]
paths = ["maps", "/etc/evmatch/default.toml"]
scripts = ["mouse.lua"]
watch = false
debounce = "250ms"
`)
	c := Default()
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	dir := filepath.Dir(path)
	want := &Config{
		Log:   LogConfig{Level: "debug", Format: "json"},
		Input: InputConfig{Mouse: true, Paste: false, Focus: true},
		Eventmaps: EventmapsConfig{
			Paths:    []string{filepath.Join(dir, "maps"), "/etc/evmatch/default.toml"},
			Scripts:  []string{filepath.Join(dir, "mouse.lua")},
			Watch:    false,
			Debounce: Duration{250 * time.Millisecond},
		},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		err := Default().LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("err = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("syntax", func(t *testing.T) {
		path := writeConfig(t, "[log]\nlevel = \n")
		var pe *ParseError
		if err := Default().LoadFile(path); !errors.As(err, &pe) {
			t.Fatalf("err = %v, want *ParseError", err)
		}
		if pe.Path != path || pe.Line != 2 {
			t.Errorf("ParseError = %+v, want line 2 of %s", pe, path)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "[log]\nlevle = \"debug\"\n")
		err := Default().LoadFile(path)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("err = %v, want *ParseError", err)
		}
		if !strings.Contains(pe.Message, "levle") {
			t.Errorf("Message = %q, want the unknown key", pe.Message)
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeConfig(t, "[eventmaps]\ndebounce = \"soon\"\n")
		if err := Default().LoadFile(path); err == nil {
			t.Error("expected error for bad duration")
		}
	})
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(lookupFrom(map[string]string{
		"EVMATCH_LOG_LEVEL":          "warn",
		"EVMATCH_INPUT_MOUSE":        "off",
		"EVMATCH_EVENTMAPS_PATHS":    "a" + string(os.PathListSeparator) + " " + string(os.PathListSeparator) + "b",
		"EVMATCH_EVENTMAPS_WATCH":    "no",
		"EVMATCH_EVENTMAPS_DEBOUNCE": "1s",
		"EVMATCH_UNRELATED":          "x",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if c.Log.Level != "warn" {
		t.Errorf("Log.Level = %q", c.Log.Level)
	}
	if c.Input.Mouse {
		t.Error("Input.Mouse = true, want false")
	}
	if diff := cmp.Diff([]string{"a", "b"}, c.Eventmaps.Paths); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
	if c.Eventmaps.Watch {
		t.Error("Eventmaps.Watch = true, want false")
	}
	if c.Eventmaps.Debounce.Duration != time.Second {
		t.Errorf("Debounce = %v", c.Eventmaps.Debounce)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"EVMATCH_INPUT_PASTE", "maybe"},
		{"EVMATCH_EVENTMAPS_DEBOUNCE", "later"},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			err := Default().ApplyEnv(lookupFrom(map[string]string{tt.env: tt.value}))
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FieldError", err)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("FieldError does not match ErrValidationFailed")
			}
			if !strings.Contains(fe.Message, tt.env) {
				t.Errorf("Message = %q, want variable name", fe.Message)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"upper-case level", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, []string{"log.level"}},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, []string{"log.format"}},
		{"negative debounce", func(c *Config) { c.Eventmaps.Debounce = Duration{-time.Second} }, []string{"eventmaps.debounce"}},
		{"empty path", func(c *Config) { c.Eventmaps.Paths = []string{""} }, []string{"eventmaps.paths[0]"}},
		{"not lua", func(c *Config) { c.Eventmaps.Scripts = []string{"a.lua", "b.py"} }, []string{"eventmaps.scripts[1]"}},
		{"several", func(c *Config) {
			c.Log.Level = "loud"
			c.Log.Format = "yaml"
		}, []string{"log.level", "log.format"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()

			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("Validate() = %v, want ErrValidationFailed", err)
			}
			for _, f := range tt.fields {
				if !strings.Contains(err.Error(), f) {
					t.Errorf("error %q does not mention %s", err, f)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("EVMATCH_LOG_FORMAT", "json")

	path := writeConfig(t, "[log]\nlevel = \"error\"\n")
	c, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "error" || c.Log.Format != "json" {
		t.Errorf("Log = %+v, want file level and env format", c.Log)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), false); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("required missing file: err = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), true); err != nil {
		t.Errorf("optional missing file: err = %v", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := writeConfig(t, "[log]\nformat = \"xml\"\n")
	if _, err := Load(path, false); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Log.Level = "debug"
	c.Eventmaps.Paths = []string{"/etc/evmatch"}
	c.Eventmaps.Debounce = Duration{2 * time.Second}

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got := &Config{}
	if err := got.LoadReader(&buf); err != nil {
		t.Fatalf("LoadReader: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(c, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "on", "1"} {
		if b, err := parseBool(s); err != nil || !b {
			t.Errorf("parseBool(%q) = %v, %v", s, b, err)
		}
	}
	for _, s := range []string{"false", "No", "off", "0"} {
		if b, err := parseBool(s); err != nil || b {
			t.Errorf("parseBool(%q) = %v, %v", s, b, err)
		}
	}
	if _, err := parseBool("2"); err == nil {
		t.Error("parseBool(\"2\") should fail")
	}
}

func TestEnvNames(t *testing.T) {
	names := EnvNames()
	if len(names) != len(envMapping) {
		t.Fatalf("len = %d, want %d", len(names), len(envMapping))
	}
	for _, n := range names {
		if !strings.HasPrefix(n, "EVMATCH_") {
			t.Errorf("%s lacks prefix", n)
		}
	}
}
