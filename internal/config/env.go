package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetting applies one environment variable to a Config.
type envSetting struct {
	field string
	apply func(c *Config, value string) error
}

// envMapping maps EVMATCH_* variables to settings.
var envMapping = map[string]envSetting{
	"EVMATCH_LOG_LEVEL":          {"log.level", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	"EVMATCH_LOG_FORMAT":         {"log.format", func(c *Config, v string) error { c.Log.Format = v; return nil }},
	"EVMATCH_LOG_FILE":           {"log.file", func(c *Config, v string) error { c.Log.File = v; return nil }},
	"EVMATCH_INPUT_MOUSE":        {"input.mouse", boolSetter(func(c *Config) *bool { return &c.Input.Mouse })},
	"EVMATCH_INPUT_PASTE":        {"input.paste", boolSetter(func(c *Config) *bool { return &c.Input.Paste })},
	"EVMATCH_INPUT_FOCUS":        {"input.focus", boolSetter(func(c *Config) *bool { return &c.Input.Focus })},
	"EVMATCH_EVENTMAPS_PATHS":    {"eventmaps.paths", func(c *Config, v string) error { c.Eventmaps.Paths = splitList(v); return nil }},
	"EVMATCH_EVENTMAPS_SCRIPTS":  {"eventmaps.scripts", func(c *Config, v string) error { c.Eventmaps.Scripts = splitList(v); return nil }},
	"EVMATCH_EVENTMAPS_WATCH":    {"eventmaps.watch", boolSetter(func(c *Config) *bool { return &c.Eventmaps.Watch })},
	"EVMATCH_EVENTMAPS_DEBOUNCE": {"eventmaps.debounce", setDebounce},
}

// ApplyEnv overrides settings from EVMATCH_* variables. Unknown EVMATCH_
// variables are ignored. A malformed value is reported as a FieldError.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for name, s := range envMapping {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, v); err != nil {
			return &FieldError{Field: s.field, Value: v, Message: fmt.Sprintf("from %s: %v", name, err)}
		}
	}
	return nil
}

// EnvNames returns the recognized environment variables.
func EnvNames() []string {
	names := make([]string, 0, len(envMapping))
	for name := range envMapping {
		names = append(names, name)
	}
	return names
}

func boolSetter(field func(c *Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func setDebounce(c *Config, v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	c.Eventmaps.Debounce = Duration{d}
	return nil
}

// parseBool accepts true/false, yes/no, on/off and 1/0.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// splitList splits a path list on the OS list separator, dropping empties.
func splitList(s string) []string {
	var out []string
	for _, p := range filepath.SplitList(s) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
