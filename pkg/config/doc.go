// Package config handles configuration management for releasedir.
// It merges embedded defaults, TOML config files, RELEASEDIR_*
// environment variables, and command-line flag overrides into one
// effective Config, in that order of precedence.
package config
