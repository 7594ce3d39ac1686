// Package workflows reconciles encrypted files with their shell directives.
//
// The cmd/ package stays a thin layer that parses flags, builds the
// collaborators and renders the result. Workflows handle everything else:
//
//   - Decrypting each file through a sops.Store
//   - Parsing directives into command mappings
//   - Running each command through an executor.CommandRunner
//   - Comparing fresh output with the value stored in the file
//   - Writing changed values back (sync) or reporting drift (check)
//   - Recording audit trail entries
//
// # Modes
//
// Check never writes. It succeeds only when no key drifted and nothing
// failed. Sync writes every drifted key and succeeds unless a file could not
// be decrypted or a key could not be resolved or written.
//
// # Failure Handling
//
// Failures are scoped. A file that cannot be decrypted is recorded on its
// FileReport and the next file is processed. A command or write that fails
// is recorded on its KeyResult and the next mapping is processed. Callers
// inspect RunResult.Err() once every file has been handled.
//
// Files and mappings are processed sequentially in the order given.
package workflows
