// Package parser finds shell directives in decrypted secret files.
//
// A directive is a comment of the form
//
//	# shell: <command>
//
// and binds its command to the nearest following key-bearing line, that
// is the first line (ignoring blank lines and comments) shaped like
// `key: value` or `key = value`. Directives without a following key, or
// with an empty command, are dropped without error.
//
// The same key pattern is used on the read path by LookupValue, so the
// value the orchestrator compares against is found exactly the way the
// key was found.
package parser
