package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/shell-sops/internal/workflows"
)

var checkKeys []string

func init() {
	checkCmd.Flags().StringSliceVarP(&checkKeys, "key", "k", nil, "only check the given key (repeatable)")
}

func resetCheckCommandState() {
	checkKeys = nil
}

var checkCmd = &cobra.Command{
	Use:   "check <files...>",
	Short: "Report keys whose value differs from their command output",
	Long: `Decrypts each file, runs every '# shell:' directive and compares the output
with the stored value. Nothing is written.

The exit status is zero only when every key is up to date and no file or
command failed, which makes check suitable for CI.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting check command")
		return reconcile(cmd, args, workflows.RunOptions{
			Mode: workflows.ModeCheck,
			Keys: checkKeys,
		})
	},
}
