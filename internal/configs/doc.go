// Package configs loads shell-sops configuration.
//
// Configuration is optional. When present it is stored in TOML format in a
// `.shell-sops.toml` file, found by walking up from the working directory,
// or at the path given with --config.
//
// # Precedence
//
// Values are resolved in this order, later sources winning:
//
//  1. Built-in defaults (DefaultConfig)
//  2. The configuration file
//  3. Environment variables (SHELL_SOPS_BINARY, SHELL_SOPS_SHELL, SHELL_SOPS_AUDIT)
//  4. Command-line flags, applied by the cmd package
//
// # Example
//
//	[sops]
//	binary = "sops"
//	ini_section = "config"
//	ini_extensions = [".ini"]
//
//	[shell]
//	program = "bash"
//	flag = "-c"
//	command_timeout = "30s"
//
//	[shell.env]
//	VAULT_ADDR = "https://vault.internal:8200"
//
//	[audit]
//	enabled = true
//	path = ".shell-sops/audit.jsonl"
//
// Relative audit paths are resolved against the directory holding the
// configuration file.
package configs
