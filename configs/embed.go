// Package configs holds the configuration templates written by
// `ignorelib config init`.
//
// Templates are embedded at build time, so every distribution ships them.
// They must stay in sync with the defaults in internal/config NewConfig():
// the project template parses to exactly those defaults.
package configs

import _ "embed"

// ProjectConfigTemplate is written to .ignorelib.yaml in the project root.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

// UserConfigTemplate is written to the user config file
// ($XDG_CONFIG_HOME/ignorelib/config.yaml).
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
