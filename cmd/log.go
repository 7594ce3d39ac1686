package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/shell-sops/internal/audit"
	"github.com/PolarWolf314/shell-sops/internal/ui"
)

var logLimit int

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "show only the last N entries")
}

func resetLogCommandState() {
	logLimit = 0
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the audit trail of synced keys",
	Long: `Shows which keys sync has rewritten, oldest first.

Auditing is enabled in the [audit] section of .shell-sops.toml or with
SHELL_SOPS_AUDIT=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load configuration: %w", err)
		}

		logPath := cfg.AuditPath()
		Logger.Debugf("Reading audit log from %s", logPath)
		entries, err := audit.ReadEntries(logPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintf(out, "No audit entries in %s\n", ui.Path.Sprint(logPath))
			if !cfg.Audit.Enabled {
				fmt.Fprintf(out, "%s Auditing is disabled, set %s in %s\n", ui.Info.Sprint("→"), ui.Code.Sprint("audit.enabled = true"), ui.Path.Sprint(".shell-sops.toml"))
			}
			return nil
		}

		if logLimit > 0 && logLimit < len(entries) {
			entries = entries[len(entries)-logLimit:]
		}

		for _, e := range entries {
			fmt.Fprintf(out, "%s  %-10s %-6s %s  %s\n",
				e.Timestamp, e.User, e.Operation, ui.Path.Sprint(e.File), strings.Join(e.Keys, ","))
		}
		return nil
	},
}
