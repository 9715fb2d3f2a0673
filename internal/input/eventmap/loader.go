package eventmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for files whose extension is not a
// supported eventmap format.
var ErrUnknownFormat = errors.New("unknown eventmap format")

// Format is an eventmap file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	default:
		return "", false
	}
}

// Loader loads eventmaps from configuration files.
type Loader struct {
	// searchPaths are directories to search for eventmap files.
	searchPaths []string

	logger *slog.Logger
}

// NewLoader creates a new eventmap loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		searchPaths: make([]string, 0),
		logger:      logger,
	}
}

// AddSearchPath adds a directory to search for eventmap files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// LoadFile loads an eventmap from a TOML, YAML or JSON file. A missing name
// defaults to the file's base name and a missing source to "file:<path>".
func (l *Loader) LoadFile(path string) (*Eventmap, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening eventmap file: %w", err)
	}
	defer f.Close()

	m, err := l.LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		base := filepath.Base(path)
		m.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if m.Source == "" {
		m.Source = "file:" + path
	}
	return m, nil
}

// LoadReader decodes an eventmap in the given format. Keys the eventmap
// schema does not define are rejected in every format.
func (l *Loader) LoadReader(r io.Reader, format Format) (*Eventmap, error) {
	var config eventmapConfig

	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&config); err != nil {
			var se *toml.StrictMissingError
			if errors.As(err, &se) {
				return nil, fmt.Errorf("decoding eventmap: unknown keys: %s: %w", strings.Join(unknownKeys(se), ", "), err)
			}
			return nil, fmt.Errorf("decoding eventmap: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding eventmap: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("decoding eventmap: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	return config.eventmap(), nil
}

func unknownKeys(se *toml.StrictMissingError) []string {
	keys := make([]string, 0, len(se.Errors))
	for _, de := range se.Errors {
		keys = append(keys, strings.Join(de.Key(), "."))
	}
	return keys
}

// LoadDir loads every eventmap file in dir in file name order. Files that
// fail to load are skipped; their errors are joined into the returned error.
func (l *Loader) LoadDir(dir string) ([]*Eventmap, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading eventmap directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var (
		maps []*Eventmap
		errs []error
	)
	for _, name := range names {
		path := filepath.Join(dir, name)
		m, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("skipping eventmap file", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		maps = append(maps, m)
	}
	return maps, errors.Join(errs...)
}

// LoadAll loads all eventmaps from the search paths. Unreadable search
// paths and broken files are logged and skipped.
func (l *Loader) LoadAll() []*Eventmap {
	maps := make([]*Eventmap, 0)

	for _, dir := range l.searchPaths {
		loaded, err := l.LoadDir(dir)
		if err != nil {
			l.logger.Debug("eventmap search path incomplete", "dir", dir, "error", err)
		}
		maps = append(maps, loaded...)
	}

	return maps
}

// LoadAndRegister loads all eventmaps and registers them.
func (l *Loader) LoadAndRegister(registry *Registry) error {
	for _, m := range l.LoadAll() {
		if err := registry.Register(m); err != nil {
			return fmt.Errorf("registering eventmap %q: %w", m.Name, err)
		}
	}
	return nil
}

// eventmapConfig is the on-disk structure shared by all formats.
type eventmapConfig struct {
	Name     string          `toml:"name" yaml:"name" json:"name"`
	Priority int             `toml:"priority,omitempty" yaml:"priority,omitempty" json:"priority,omitempty"`
	Source   string          `toml:"source,omitempty" yaml:"source,omitempty" json:"source,omitempty"`
	Bindings []bindingConfig `toml:"bindings" yaml:"bindings" json:"bindings"`
}

type bindingConfig struct {
	Pattern     string         `toml:"pattern" yaml:"pattern" json:"pattern"`
	Action      string         `toml:"action" yaml:"action" json:"action"`
	Args        map[string]any `toml:"args,omitempty" yaml:"args,omitempty" json:"args,omitempty"`
	Description string         `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Category    string         `toml:"category,omitempty" yaml:"category,omitempty" json:"category,omitempty"`
}

func (c eventmapConfig) eventmap() *Eventmap {
	m := &Eventmap{
		Name:     c.Name,
		Priority: c.Priority,
		Source:   c.Source,
		Bindings: make([]Binding, 0, len(c.Bindings)),
	}
	for _, bc := range c.Bindings {
		m.Bindings = append(m.Bindings, Binding(bc))
	}
	return m
}

func configOf(m *Eventmap) eventmapConfig {
	c := eventmapConfig{
		Name:     m.Name,
		Priority: m.Priority,
		Source:   m.Source,
		Bindings: make([]bindingConfig, 0, len(m.Bindings)),
	}
	for _, b := range m.Bindings {
		c.Bindings = append(c.Bindings, bindingConfig(b))
	}
	return c
}

// Encode writes m in the given format.
func Encode(w io.Writer, m *Eventmap, format Format) error {
	c := configOf(m)

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	default:
		return fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// SaveFile writes m to path in the format implied by its extension.
func (m *Eventmap) SaveFile(path string) error {
	format, ok := FormatFromPath(path)
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, m, format); err != nil {
		return fmt.Errorf("encoding eventmap: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing eventmap file: %w", err)
	}
	return nil
}
