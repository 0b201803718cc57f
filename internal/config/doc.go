// Package config loads, validates, and normalizes the reidset TOML
// configuration. Paths are expanded (~ and relative forms) before any
// other package sees them.
package config
