// Package output renders projman's registries and settings for the
// listing commands.
//
// Four formats are supported:
//   - term: lipgloss styles from pkg/output/styles, template descriptions
//     rendered as markdown with glamour
//   - text: the same layout without escape sequences
//   - json and yaml: machine-readable documents with stable field names
//
// Interactive operations report through the host instead; this package is
// only used for output that goes to stdout.
package output
