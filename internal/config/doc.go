// Package config defines compiler settings and provides helpers to load,
// validate and save them in YAML format.
//
// Validate applies defaults, so a loaded or hand-built Config is ready to use
// once it returns nil.
package config
