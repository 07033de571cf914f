// Package config handles configuration management for projman.
// Settings are layered from embedded defaults, the user's TOML file and
// PROJMAN_* environment variables; changes made through Set are written
// back to the user's file.
package config
