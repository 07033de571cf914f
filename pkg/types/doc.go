// Package types defines the interfaces shared across projman's packages:
// the filesystem abstraction used by the stores and the duplicator, and the
// path provider that locates persisted state.
package types
