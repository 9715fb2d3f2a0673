// Package config provides the configuration of the evmatch tool.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority (applied by the caller)
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← EVMATCH_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← evmatch.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # File Format
//
//	[log]
//	level = "debug"
//	format = "json"
//	file = "/tmp/evmatch.log"
//
//	[input]
//	mouse = true
//	paste = true
//	focus = true
//
//	[eventmaps]
//	paths = ["~/.config/evmatch/eventmaps"]
//	scripts = ["~/.config/evmatch/mouse.lua"]
//	watch = true
//	debounce = "150ms"
//
// Unknown keys are rejected so that typos surface as errors.
package config
