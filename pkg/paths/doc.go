// Package paths provides centralized path handling for projman.
//
// It resolves the XDG locations of the registries, the user configuration
// and the log file, detects the active workspace root, and validates the
// names users give to projects and templates.
package paths
