// Package errors provides typed error values for shell-sops.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Tool errors: the external sops binary is missing or failed
//     (ErrToolNotFound, ErrToolExecutionFailed, ErrEncoding)
//   - Command errors: a directive's shell command failed
//     (ErrCommandExecutionFailed)
//   - File errors: pre-flight checks on the target files
//     (ErrFileNotFound, ErrNoFilesFound)
//   - Outcome errors: the run finished but must exit non-zero
//     (ErrDriftDetected, ErrSyncFailed)
//   - Configuration errors: a malformed file or override (ErrInvalidConfig)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrToolExecutionFailed, stderr)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, serrors.ErrDriftDetected) {
//	    // Exit non-zero without printing usage
//	}
package errors
