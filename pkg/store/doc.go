// Package store persists a collection of records as a JSON array in a
// single file. It is the persistence layer underneath the project and
// template registries.
//
// A missing file loads as an empty collection, and so does a corrupted
// one: the registries must stay usable after a bad write or a hand edit.
// The two cases are logged at different levels so they can be told apart.
// Records implementing Validator are checked after decoding; a single
// invalid record counts as corruption of the whole file.
package store
