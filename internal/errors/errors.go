package errors

import "errors"

// Tool errors indicate the external encryption tool could not do its job.
var (
	// ErrToolNotFound indicates the sops binary could not be found on PATH.
	ErrToolNotFound = errors.New("sops command not found, install sops or ensure it is in PATH")

	// ErrToolExecutionFailed indicates sops exited with a non-zero status.
	ErrToolExecutionFailed = errors.New("sops command failed")

	// ErrEncoding indicates sops produced output that is not valid UTF-8 text.
	ErrEncoding = errors.New("sops output is not valid UTF-8")
)

// Command errors indicate a directive's shell command could not produce a value.
var (
	// ErrCommandExecutionFailed indicates a shell command failed to start or exited non-zero.
	ErrCommandExecutionFailed = errors.New("shell command failed")
)

// File errors indicate issues with the files passed on the command line.
var (
	// ErrFileNotFound indicates a target file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoFilesFound indicates no target files were supplied.
	ErrNoFilesFound = errors.New("no files to process")
)

// Outcome errors indicate a run completed but must report failure.
var (
	// ErrDriftDetected indicates check mode found at least one drifted key.
	ErrDriftDetected = errors.New("drift detected")

	// ErrSyncFailed indicates one or more files or keys could not be processed.
	ErrSyncFailed = errors.New("one or more files or keys failed")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the configuration file or an override is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")
)
