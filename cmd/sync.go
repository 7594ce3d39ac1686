package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/shell-sops/internal/workflows"
)

var (
	syncDryRun bool
	syncKeys   []string
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "show which keys would change without writing")
	syncCmd.Flags().StringSliceVarP(&syncKeys, "key", "k", nil, "only sync the given key (repeatable)")
}

func resetSyncCommandState() {
	syncDryRun = false
	syncKeys = nil
}

var syncCmd = &cobra.Command{
	Use:   "sync <files...>",
	Short: "Write fresh command output into out-of-date keys",
	Long: `Decrypts each file, runs every '# shell:' directive and writes the output
back into the key below it with 'sops --set' when it differs from the stored
value.

Files are processed one at a time. A file that cannot be decrypted, or a
command that fails, is reported and skipped; the remaining files are still
synced. The exit status is non-zero if anything failed.

Arguments may be glob patterns ('**' is supported). Every file must exist
before anything is processed.

Use --dry-run to preview which keys would change.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")
		return reconcile(cmd, args, workflows.RunOptions{
			Mode:   workflows.ModeSync,
			DryRun: syncDryRun,
			Keys:   syncKeys,
		})
	},
}
