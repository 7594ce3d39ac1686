package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/shell-sops/internal/configs"
	"github.com/PolarWolf314/shell-sops/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration shell-sops would use in the current directory,
after applying the configuration file, SHELL_SOPS_* environment variables and
command-line flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load configuration: %w", err)
		}

		out := cmd.OutOrStdout()
		if cfg.Path != "" {
			fmt.Fprintf(out, "# loaded from %s\n", ui.Path.Sprint(cfg.Path))
		} else {
			fmt.Fprintf(out, "# no %s found, using defaults\n", configs.FileName)
		}
		return configs.WriteTOML(out, cfg)
	},
}
