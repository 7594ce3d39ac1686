// Package utils provides shared helpers for the shell-sops CLI.
//
// # Filesystem Utilities
//
//   - ResolveFiles: expands globs and checks every target file exists
//
// # Terminal Utilities
//
//   - IsTerminal: checks if a file is attached to a terminal
package utils
