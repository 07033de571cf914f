// Package filesystem provides filesystem implementations for projman.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed filesystem
// used for in-memory tests.
package filesystem
