package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/shell-sops/internal/utils"
	"github.com/PolarWolf314/shell-sops/internal/workflows"
)

// reconcile runs the shared sync/check flow: pre-flight the files, load the
// configuration, run the workflow and print the report.
func reconcile(cmd *cobra.Command, args []string, opts workflows.RunOptions) error {
	cmd.SilenceUsage = true

	files, err := utils.ResolveFiles(args)
	if err != nil {
		return Logger.ErrorfAndReturn("%w", err)
	}
	Logger.Debugf("Resolved %d file(s): %v", len(files), files)

	cfg, err := loadConfig()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to load configuration: %w", err)
	}

	runner, err := newRunner(cfg)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to configure shell: %w", err)
	}

	opts.Files = files
	opts.Store = newStore(cfg)
	opts.Runner = runner
	opts.Logger = Logger
	if cfg.Audit.Enabled {
		opts.AuditLogPath = cfg.AuditPath()
		Logger.Debugf("Audit log: %s", opts.AuditLogPath)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	message := "Checking secrets..."
	if opts.Mode == workflows.ModeSync {
		message = "Syncing secrets..."
	}
	stop := startSpinner(message)
	result, err := workflows.Run(ctx, opts)
	stop()
	if err != nil {
		return Logger.ErrorfAndReturn("%s failed: %w", opts.Mode, err)
	}

	printReport(cmd.OutOrStdout(), result, verbose || debug)

	if len(result.UnmatchedKeys) > 0 {
		Logger.WarnfAlways("No directive found for %s: %s", plural(len(result.UnmatchedKeys), "key"), strings.Join(result.UnmatchedKeys, ", "))
	}

	if result.AuditErr != nil {
		Logger.WarnfAlways("Failed to write audit log: %v", result.AuditErr)
	}

	return result.Err()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
