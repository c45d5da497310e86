// Package config loads, normalizes, and validates ristab's TOML
// configuration. Defaults live in defaults.go; Load layers a config file over
// them, expands paths, and rejects unusable combinations before any
// conversion starts.
package config
