package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/shell-sops/internal/audit"
	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
	"github.com/PolarWolf314/shell-sops/internal/executor"
	logger "github.com/PolarWolf314/shell-sops/internal/logging"
	"github.com/PolarWolf314/shell-sops/internal/parser"
	"github.com/PolarWolf314/shell-sops/internal/sops"
)

// RunOptions configures a sync or check run.
type RunOptions struct {
	Mode Mode

	// Files are processed in order. They must already exist.
	Files []string

	Store  sops.Store
	Runner executor.CommandRunner

	// DryRun reports what sync would write without writing. Ignored by check.
	DryRun bool

	// Keys restricts the run to the named keys. Empty means every key.
	Keys []string

	// AuditLogPath enables the audit trail when set. Only sync writes entries.
	AuditLogPath string

	Logger logger.Logger
}

// Sync writes fresh command output into every drifted key.
func Sync(ctx context.Context, opts RunOptions) (*RunResult, error) {
	opts.Mode = ModeSync
	return Run(ctx, opts)
}

// Check reports drifted keys without modifying any file.
func Check(ctx context.Context, opts RunOptions) (*RunResult, error) {
	opts.Mode = ModeCheck
	opts.DryRun = false
	return Run(ctx, opts)
}

// Run reconciles every file in opts.Files.
//
// The returned error is reserved for invalid options and cancellation;
// per-file and per-key failures are recorded in the result. Use
// RunResult.Err() to decide the exit status.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Mode != ModeSync && opts.Mode != ModeCheck {
		return nil, fmt.Errorf("unknown mode %q", opts.Mode)
	}
	if opts.Store == nil {
		return nil, errors.New("no store configured")
	}
	if opts.Runner == nil {
		return nil, errors.New("no command runner configured")
	}
	if len(opts.Files) == 0 {
		return nil, serrors.ErrNoFilesFound
	}

	result := &RunResult{
		Mode:   opts.Mode,
		DryRun: opts.Mode == ModeSync && opts.DryRun,
	}
	r := &reconciler{
		opts:    opts,
		log:     opts.Logger,
		filter:  keyFilter(opts.Keys),
		matched: make(map[string]bool),
	}

	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Files = append(result.Files, r.processFile(ctx, path))
	}

	result.UnmatchedKeys = r.unmatchedKeys()

	if opts.Mode == ModeSync && !result.DryRun && opts.AuditLogPath != "" {
		result.AuditErr = recordAudit(opts.AuditLogPath, result)
	}

	return result, nil
}

type reconciler struct {
	opts   RunOptions
	log    logger.Logger
	filter map[string]bool

	// matched holds the filter keys seen in any decrypted file.
	matched map[string]bool
}

func (r *reconciler) processFile(ctx context.Context, path string) FileReport {
	report := FileReport{Path: path}

	r.log.Infof("Decrypting %s", path)
	plaintext, err := r.opts.Store.Decrypt(ctx, path)
	if err != nil {
		r.log.Debugf("Decrypt failed for %s: %v", path, err)
		report.Err = fmt.Errorf("decrypting %s: %w", path, err)
		return report
	}

	mappings := parser.ParseCommands(plaintext)
	r.log.Debugf("Found %d directive(s) in %s", len(mappings), path)

	for _, m := range mappings {
		if r.filter != nil && !r.filter[m.Key] {
			r.log.Debugf("Skipping %s, not selected", m.Key)
			continue
		}
		r.matched[m.Key] = true
		report.Results = append(report.Results, r.resolve(ctx, path, plaintext, m))
	}

	return report
}

func (r *reconciler) resolve(ctx context.Context, path, plaintext string, m parser.CommandMapping) KeyResult {
	res := KeyResult{Key: m.Key, Command: m.Command, Line: m.Line}

	r.log.Debugf("Running command for %s (line %d)", m.Key, m.Line)
	expected, err := r.opts.Runner.Run(ctx, m.Command)
	if err != nil {
		r.log.Debugf("Command for %s failed: %v", m.Key, err)
		res.Err = err
		return res
	}
	res.Expected = expected

	res.Current, res.Found = parser.LookupValue(plaintext, m.Key)
	res.Changed = !res.Found || !matchesStored(res.Current, res.Expected)
	if !res.Changed {
		r.log.Debugf("%s is up to date", m.Key)
		return res
	}

	if r.opts.Mode == ModeCheck || r.opts.DryRun {
		r.log.Infof("%s in %s is out of date", m.Key, path)
		return res
	}

	r.log.Infof("Updating %s in %s", m.Key, path)
	if err := r.opts.Store.Set(ctx, path, m.Key, expected); err != nil {
		r.log.Debugf("Writing %s failed: %v", m.Key, err)
		res.Err = fmt.Errorf("writing %s: %w", m.Key, err)
		return res
	}
	res.Updated = true

	return res
}

// unmatchedKeys lists the requested keys no directive was bound to, in the
// order they were requested.
func (r *reconciler) unmatchedKeys() []string {
	var missing []string
	seen := make(map[string]bool)
	for _, k := range r.opts.Keys {
		if r.matched[k] || seen[k] {
			continue
		}
		seen[k] = true
		missing = append(missing, k)
	}
	return missing
}

// matchesStored reports whether the stored value already holds the command
// output, either verbatim or in the form sops prints after a --set.
func matchesStored(current, expected string) bool {
	return current == expected || current == sops.RenderedValue(expected)
}

func keyFilter(keys []string) map[string]bool {
	if len(keys) == 0 {
		return nil
	}
	filter := make(map[string]bool, len(keys))
	for _, k := range keys {
		filter[k] = true
	}
	return filter
}

func recordAudit(logPath string, result *RunResult) error {
	runID := audit.NewRunID()
	user := audit.CurrentUser()

	var errs []error
	for _, f := range result.Files {
		updated := f.Updated()
		if len(updated) == 0 {
			continue
		}
		entry := audit.Entry{
			RunID:     runID,
			User:      user,
			Operation: string(result.Mode),
			File:      f.Path,
			Keys:      updated,
		}
		if err := audit.Log(logPath, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
