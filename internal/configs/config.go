package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
	"github.com/PolarWolf314/shell-sops/internal/sops"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".shell-sops.toml"

const (
	EnvBinary = "SHELL_SOPS_BINARY"
	EnvShell  = "SHELL_SOPS_SHELL"
	EnvAudit  = "SHELL_SOPS_AUDIT"
)

type Config struct {
	Sops  SopsConfig  `toml:"sops"`
	Shell ShellConfig `toml:"shell"`
	Audit AuditConfig `toml:"audit"`

	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `toml:"-"`
}

type SopsConfig struct {
	Binary        string   `toml:"binary"`
	INISection    string   `toml:"ini_section"`
	INIExtensions []string `toml:"ini_extensions"`
}

type ShellConfig struct {
	Program        string            `toml:"program"`
	Flag           string            `toml:"flag"`
	CommandTimeout string            `toml:"command_timeout"`
	Env            map[string]string `toml:"env,omitempty"`
}

type AuditConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Sops: SopsConfig{
			Binary:        sops.DefaultBinary,
			INISection:    sops.DefaultINISection,
			INIExtensions: append([]string(nil), sops.DefaultINIExtensions...),
		},
		Shell: ShellConfig{
			Program:        "sh",
			Flag:           "-c",
			CommandTimeout: "0s",
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    filepath.Join(".shell-sops", "audit.jsonl"),
		},
	}
}

// Load reads the configuration at path, or discovers one from the working
// directory when path is empty, then applies environment overrides.
// A missing discovered file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			return nil, err
		}
		path = found
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", serrors.ErrInvalidConfig, path, err)
	}

	if path != "" {
		if err := LoadTOML(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", serrors.ErrInvalidConfig, path, err)
		}
		cfg.Path = path
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnvOverrides overlays SHELL_SOPS_* environment variables onto cfg.
func ApplyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBinary)); v != "" {
		cfg.Sops.Binary = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvShell)); v != "" {
		cfg.Shell.Program = v
	}
	if raw := strings.TrimSpace(os.Getenv(EnvAudit)); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", serrors.ErrInvalidConfig, EnvAudit, raw)
		}
		cfg.Audit.Enabled = v
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sops.Binary) == "" {
		return fmt.Errorf("%w: sops.binary must not be empty", serrors.ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Shell.Program) == "" {
		return fmt.Errorf("%w: shell.program must not be empty", serrors.ErrInvalidConfig)
	}
	for _, ext := range c.Sops.INIExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: ini extension %q must start with '.'", serrors.ErrInvalidConfig, ext)
		}
	}
	if _, err := c.CommandTimeout(); err != nil {
		return err
	}
	if c.Audit.Enabled && strings.TrimSpace(c.Audit.Path) == "" {
		return fmt.Errorf("%w: audit.path must be set when auditing is enabled", serrors.ErrInvalidConfig)
	}
	return nil
}

// CommandTimeout parses shell.command_timeout. Empty or zero means no limit.
func (c *Config) CommandTimeout() (time.Duration, error) {
	raw := strings.TrimSpace(c.Shell.CommandTimeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: shell.command_timeout %q is not a valid duration", serrors.ErrInvalidConfig, raw)
	}
	return d, nil
}

// AuditPath returns the audit log location, resolving relative paths
// against the configuration file's directory.
func (c *Config) AuditPath() string {
	if filepath.IsAbs(c.Audit.Path) || c.Path == "" {
		return c.Audit.Path
	}
	return filepath.Join(filepath.Dir(c.Path), c.Audit.Path)
}

// FindConfigFile walks up from the working directory looking for FileName.
// Returns an empty string if none is found before the filesystem root.
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(currentDir, FileName)
		info, err := os.Stat(candidate)
		if err == nil {
			if !info.IsDir() {
				return candidate, nil
			}
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("error checking for %s at %s: %w", FileName, currentDir, err)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}
