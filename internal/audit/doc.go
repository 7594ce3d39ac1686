// Package audit records which keys shell-sops rewrote.
//
// Every sync run that writes at least one key appends one entry per file to
// a JSON Lines log (one JSON object per line). Auditing is opt-in through
// the [audit] section of the configuration.
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Run ID shared by every entry written in the same invocation
//   - Local user name
//   - Operation name and target file
//   - Names of the keys that were updated
//
// Values are never recorded.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), Log returns the error for the caller to warn about, but the sync
// itself has already happened and is not rolled back.
package audit
