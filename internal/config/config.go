package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the name of the config file in the user config dir.
const DefaultFileName = "evmatch.toml"

// Config is the complete application configuration.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Input     InputConfig     `toml:"input"`
	Eventmaps EventmapsConfig `toml:"eventmaps"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`

	// File is the log destination. Empty means stderr.
	File string `toml:"file"`
}

// InputConfig selects which terminal reports are enabled.
type InputConfig struct {
	Mouse bool `toml:"mouse"`
	Paste bool `toml:"paste"`
	Focus bool `toml:"focus"`
}

// EventmapsConfig locates eventmap sources.
type EventmapsConfig struct {
	// Paths are eventmap files or directories (TOML, YAML or JSON).
	Paths []string `toml:"paths"`

	// Scripts are Lua files that build eventmaps.
	Scripts []string `toml:"scripts"`

	// Watch reloads eventmaps when their files change.
	Watch bool `toml:"watch"`

	// Debounce is the quiet period before a changed file is reloaded.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a string such as "150ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Input: InputConfig{
			Mouse: true,
			Paste: true,
			Focus: true,
		},
		Eventmaps: EventmapsConfig{
			Watch:    true,
			Debounce: Duration{100 * time.Millisecond},
		},
	}
}

// DefaultPath returns the config file location in the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "evmatch", DefaultFileName)
}

// Load builds the configuration from defaults, the file at path and the
// process environment, then validates it. An empty path skips the file.
// When optional is true a missing file is not an error.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		err := cfg.LoadFile(path)
		switch {
		case errors.Is(err, ErrFileNotFound) && optional:
		case err != nil:
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile overlays the TOML file at path onto c. Keys missing from the
// file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := c.decode(path, bytes.NewReader(data)); err != nil {
		return err
	}
	c.expandPaths(filepath.Dir(path))
	return nil
}

// LoadReader overlays TOML read from r onto c.
func (c *Config) LoadReader(r io.Reader) error {
	return c.decode("<reader>", r)
}

func (c *Config) decode(source string, r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		var se *toml.StrictMissingError
		if errors.As(err, &se) {
			pe.Message = "unknown keys: " + strings.Join(unknownKeys(se), ", ")
		}
		return pe
	}
	return nil
}

func unknownKeys(se *toml.StrictMissingError) []string {
	keys := make([]string, 0, len(se.Errors))
	for _, de := range se.Errors {
		keys = append(keys, strings.Join(de.Key(), "."))
	}
	return keys
}

// expandPaths resolves "~" and paths relative to the config file directory.
func (c *Config) expandPaths(base string) {
	for i, p := range c.Eventmaps.Paths {
		c.Eventmaps.Paths[i] = expandPath(base, p)
	}
	for i, p := range c.Eventmaps.Scripts {
		c.Eventmaps.Scripts[i] = expandPath(base, p)
	}
	if c.Log.File != "" {
		c.Log.File = expandPath(base, c.Log.File)
	}
}

func expandPath(base, p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, &FieldError{Field: "log.level", Value: c.Log.Level, Message: "must be one of " + strings.Join(validLevels, ", ")})
	}
	if !slices.Contains(validFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, &FieldError{Field: "log.format", Value: c.Log.Format, Message: "must be text or json"})
	}
	if c.Eventmaps.Debounce.Duration < 0 {
		errs = append(errs, &FieldError{Field: "eventmaps.debounce", Value: c.Eventmaps.Debounce, Message: "must not be negative"})
	}
	for i, p := range c.Eventmaps.Paths {
		if p == "" {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("eventmaps.paths[%d]", i), Value: `""`, Message: "must not be empty"})
		}
	}
	for i, p := range c.Eventmaps.Scripts {
		if !strings.HasSuffix(p, ".lua") {
			errs = append(errs, &FieldError{Field: fmt.Sprintf("eventmaps.scripts[%d]", i), Value: p, Message: "must be a .lua file"})
		}
	}

	return errors.Join(errs...)
}
