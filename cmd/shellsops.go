package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/shell-sops/internal/configs"
	"github.com/PolarWolf314/shell-sops/internal/executor"
	logger "github.com/PolarWolf314/shell-sops/internal/logging"
	"github.com/PolarWolf314/shell-sops/internal/sops"
	"github.com/PolarWolf314/shell-sops/internal/ui"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	verbose    bool
	debug      bool
	configPath string
	sopsBinary string
	Logger     logger.Logger

	ShellSopsCmd = &cobra.Command{
		Use:   "shell-sops",
		Short: "Sync secrets from shell commands into SOPS encrypted files",
		Long: `shell-sops keeps values in SOPS encrypted files in step with the output of
shell commands declared next to them.

Annotate a key with a directive on the line above it:

  # shell: vault kv get -field=password secret/db
  db_password: old-value

Then run:
  shell-sops check secrets.yaml   report keys that are out of date
  shell-sops sync secrets.yaml    write fresh command output back through sops`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewFigure("shell-sops", "", true)
			fmt.Fprintln(cmd.OutOrStdout(), banner.String())
			fmt.Fprintln(cmd.OutOrStdout(), "Run "+ui.Code.Sprint("shell-sops --help")+" to see available commands.")
		},
		SilenceErrors: true,
	}
)

// newStore builds the encrypted store. Tests replace it with a fake.
var newStore = func(cfg *configs.Config) sops.Store {
	return &sops.Client{
		Binary:        cfg.Sops.Binary,
		INISection:    cfg.Sops.INISection,
		INIExtensions: cfg.Sops.INIExtensions,
	}
}

// newRunner builds the runner for directive commands. Tests replace it with a fake.
var newRunner = func(cfg *configs.Config) (executor.CommandRunner, error) {
	timeout, err := cfg.CommandTimeout()
	if err != nil {
		return nil, err
	}
	runner := &executor.ShellRunner{
		Program: cfg.Shell.Program,
		Flag:    cfg.Shell.Flag,
		Env:     cfg.Shell.Env,
		Timeout: timeout,
	}
	if debug {
		runner.Stderr = Logger.Err
	}
	return runner, nil
}

func init() {
	ShellSopsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	ShellSopsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	ShellSopsCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a .shell-sops.toml file")
	ShellSopsCmd.PersistentFlags().StringVar(&sopsBinary, "sops-binary", "", "sops executable to use (overrides config)")

	ShellSopsCmd.AddCommand(syncCmd)
	ShellSopsCmd.AddCommand(checkCmd)
	ShellSopsCmd.AddCommand(configCmd)
	ShellSopsCmd.AddCommand(logCmd)
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig() (*configs.Config, error) {
	Logger.Debugf("Loading configuration (explicit path: %q)", configPath)
	cfg, err := configs.Load(configPath)
	if err != nil {
		return nil, err
	}
	if sopsBinary != "" {
		cfg.Sops.Binary = sopsBinary
	}
	if cfg.Path != "" {
		Logger.Infof("Using configuration from %s", cfg.Path)
	}
	return cfg, nil
}

// Helper functions for testing

// GetShellSopsCmd returns the root command for testing.
func GetShellSopsCmd() *cobra.Command {
	return ShellSopsCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	sopsBinary = ""
	Logger = logger.Logger{}
	resetSyncCommandState()
	resetCheckCommandState()
	resetLogCommandState()
	resetCobraFlagState(ShellSopsCmd)
}

// resetCobraFlagState clears Changed on every flag so slice flags start empty
// on the next Execute.
func resetCobraFlagState(c *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}
