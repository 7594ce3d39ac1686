package workflows

import (
	"errors"
	"fmt"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
)

// Mode selects between reporting drift and fixing it.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeCheck Mode = "check"
)

// KeyResult is the outcome of resolving one directive.
type KeyResult struct {
	Key     string
	Command string
	Line    int

	// Expected is the command output; Current the value found in the file.
	Expected string
	Current  string

	// Found is false when the key could not be located in the plaintext.
	Found bool

	// Changed is true when Expected differs from Current, or the key is missing.
	Changed bool

	// Updated is true when the new value was written back.
	Updated bool

	Err error
}

// FileReport collects the results for one file.
type FileReport struct {
	Path    string
	Results []KeyResult

	// Err is set when the file could not be decrypted; Results is then empty.
	Err error
}

// Drifted returns the keys whose value differs from their command output.
func (f FileReport) Drifted() []string {
	var keys []string
	for _, r := range f.Results {
		if r.Err == nil && r.Changed {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Updated returns the keys that were written back.
func (f FileReport) Updated() []string {
	var keys []string
	for _, r := range f.Results {
		if r.Updated {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Failures counts the file-level and mapping-level errors in the report.
func (f FileReport) Failures() int {
	if f.Err != nil {
		return 1
	}
	n := 0
	for _, r := range f.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// RunResult aggregates the reports of every processed file.
type RunResult struct {
	Mode   Mode
	DryRun bool
	Files  []FileReport

	// AuditErr records a failure to write the audit trail. It does not
	// affect Success.
	AuditErr error

	// UnmatchedKeys lists requested keys that no directive in any decrypted
	// file was bound to.
	UnmatchedKeys []string
}

// DriftCount returns the number of drifted keys across all files.
func (r *RunResult) DriftCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Drifted())
	}
	return n
}

// UpdateCount returns the number of keys written across all files.
func (r *RunResult) UpdateCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Updated())
	}
	return n
}

// FailureCount returns the number of file and mapping failures.
func (r *RunResult) FailureCount() int {
	n := 0
	for _, f := range r.Files {
		n += f.Failures()
	}
	return n
}

// Success reports whether the run should exit zero.
func (r *RunResult) Success() bool {
	return r.Err() == nil
}

// Err summarizes why the run was unsuccessful, or returns nil.
//
// The error wraps ErrSyncFailed when anything failed and, in check mode,
// ErrDriftDetected when any key drifted.
func (r *RunResult) Err() error {
	var errs []error
	if failures := r.FailureCount(); failures > 0 {
		errs = append(errs, fmt.Errorf("%w: %d failure(s)", serrors.ErrSyncFailed, failures))
	}
	if r.Mode == ModeCheck {
		if drift := r.DriftCount(); drift > 0 {
			errs = append(errs, fmt.Errorf("%w: %d key(s) out of date", serrors.ErrDriftDetected, drift))
		}
	}
	return errors.Join(errs...)
}
