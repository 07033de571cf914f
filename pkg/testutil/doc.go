// Package testutil provides helpers shared by projman's package tests.
//
// Key components:
//   - FakeHost: scripted host.Host recording every interaction
//   - Environment: isolated data directory with registries wired to it
//   - WriteTree / ReadJSON: small filesystem helpers
//
// Tests that exercise the duplicator against real permissions or symlinks
// use the isolated (temp dir) environment; everything else can run on the
// in-memory filesystem.
package testutil
