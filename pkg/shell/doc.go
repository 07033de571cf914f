// Package shell generates the shell function that lets 'projman open'
// change the current directory of the calling shell.
package shell
