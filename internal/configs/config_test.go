package configs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
)

// writeConfig writes a config file for tests.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to write config: %v", err)
	}
}

// chdir changes into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBinary, "")
	t.Setenv(EnvShell, "")
	t.Setenv(EnvAudit, "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Sops.Binary != "sops" {
		t.Errorf("Expected default binary 'sops', got: %s", cfg.Sops.Binary)
	}
	if cfg.Sops.INISection != "config" {
		t.Errorf("Expected default INI section 'config', got: %s", cfg.Sops.INISection)
	}
	if len(cfg.Sops.INIExtensions) != 1 || cfg.Sops.INIExtensions[0] != ".ini" {
		t.Errorf("Expected default INI extensions [.ini], got: %v", cfg.Sops.INIExtensions)
	}
	if cfg.Shell.Program != "sh" || cfg.Shell.Flag != "-c" {
		t.Errorf("Expected default shell 'sh -c', got: %s %s", cfg.Shell.Program, cfg.Shell.Flag)
	}
	if cfg.Audit.Enabled {
		t.Error("Expected auditing to be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Expected no config path, got: %s", cfg.Path)
	}
	if cfg.Sops.Binary != "sops" {
		t.Errorf("Expected default binary, got: %s", cfg.Sops.Binary)
	}
}

func TestLoad_DiscoversFileInParent(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	writeConfig(t, filepath.Join(root, FileName), `
[sops]
binary = "/opt/bin/sops"

[shell]
program = "bash"
command_timeout = "30s"

[shell.env]
VAULT_ADDR = "https://vault.internal:8200"

[audit]
enabled = true
path = "logs/audit.jsonl"
`)
	nested := filepath.Join(root, "services", "api")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("Failed to create nested dir: %v", err)
	}
	chdir(t, nested)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.HasSuffix(cfg.Path, FileName) {
		t.Errorf("Expected config path to end with %s, got: %s", FileName, cfg.Path)
	}
	if cfg.Sops.Binary != "/opt/bin/sops" {
		t.Errorf("Expected binary from file, got: %s", cfg.Sops.Binary)
	}
	if cfg.Sops.INISection != "config" {
		t.Errorf("Expected default INI section to survive, got: %s", cfg.Sops.INISection)
	}
	if cfg.Shell.Program != "bash" || cfg.Shell.Flag != "-c" {
		t.Errorf("Expected 'bash -c', got: %s %s", cfg.Shell.Program, cfg.Shell.Flag)
	}
	if cfg.Shell.Env["VAULT_ADDR"] != "https://vault.internal:8200" {
		t.Errorf("Expected shell env from file, got: %v", cfg.Shell.Env)
	}
	timeout, err := cfg.CommandTimeout()
	if err != nil || timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got: %v (%v)", timeout, err)
	}
	if !cfg.Audit.Enabled {
		t.Error("Expected auditing enabled from file")
	}
	if got := cfg.AuditPath(); got != filepath.Join(filepath.Dir(cfg.Path), "logs", "audit.jsonl") {
		t.Errorf("Expected audit path relative to config file, got: %s", got)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, serrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, path, "[sops]\nbinnary = \"sops\"\n")

	_, err := Load(path)
	if !errors.Is(err, serrors.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got: %v", err)
	}
	if !strings.Contains(err.Error(), "binnary") {
		t.Errorf("Expected unknown key in error, got: %v", err)
	}
}

func TestLoad_RejectsMalformedTOML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, path, "[sops\n")

	if _, err := Load(path); !errors.Is(err, serrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeConfig(t, path, "[sops]\nbinary = \"from-file\"\n")
	t.Setenv(EnvBinary, "from-env")
	t.Setenv(EnvShell, "zsh")
	t.Setenv(EnvAudit, "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Sops.Binary != "from-env" {
		t.Errorf("Expected env to override binary, got: %s", cfg.Sops.Binary)
	}
	if cfg.Shell.Program != "zsh" {
		t.Errorf("Expected env to override shell, got: %s", cfg.Shell.Program)
	}
	if !cfg.Audit.Enabled {
		t.Error("Expected env to enable auditing")
	}
}

func TestLoad_InvalidEnvBool(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv(EnvAudit, "maybe")

	if _, err := Load(""); !errors.Is(err, serrors.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty binary", func(c *Config) { c.Sops.Binary = " " }},
		{"empty shell", func(c *Config) { c.Shell.Program = "" }},
		{"extension without dot", func(c *Config) { c.Sops.INIExtensions = []string{"ini"} }},
		{"bad timeout", func(c *Config) { c.Shell.CommandTimeout = "soon" }},
		{"negative timeout", func(c *Config) { c.Shell.CommandTimeout = "-1s" }},
		{"audit without path", func(c *Config) { c.Audit.Enabled = true; c.Audit.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, serrors.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestAuditPath_AbsoluteAndDefault(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.AuditPath(); got != filepath.Join(".shell-sops", "audit.jsonl") {
		t.Errorf("Expected relative default path without config file, got: %s", got)
	}

	abs := filepath.Join(t.TempDir(), "audit.jsonl")
	cfg.Path = "/somewhere/.shell-sops.toml"
	cfg.Audit.Path = abs
	if got := cfg.AuditPath(); got != abs {
		t.Errorf("Expected absolute path unchanged, got: %s", got)
	}
}

func TestWriteTOML_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shell.Env = map[string]string{"A": "1"}

	var buf bytes.Buffer
	if err := WriteTOML(&buf, cfg); err != nil {
		t.Fatalf("WriteTOML failed: %v", err)
	}
	if strings.Contains(buf.String(), "Path") {
		t.Errorf("Expected Path field to be skipped, got:\n%s", buf.String())
	}

	var loaded Config
	if _, err := toml.Decode(buf.String(), &loaded); err != nil {
		t.Fatalf("Failed to decode written config: %v", err)
	}
	if loaded.Sops.Binary != cfg.Sops.Binary || loaded.Shell.Env["A"] != "1" {
		t.Errorf("Round trip lost data: %+v", loaded)
	}
}
