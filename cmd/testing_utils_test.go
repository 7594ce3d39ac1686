package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/PolarWolf314/shell-sops/internal/configs"
	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
	"github.com/PolarWolf314/shell-sops/internal/executor"
	"github.com/PolarWolf314/shell-sops/internal/sops"
)

type setCall struct {
	Path  string
	Key   string
	Value string
}

// memStore holds decrypted content in memory, keyed by the path the CLI passes.
type memStore struct {
	files map[string]string
	sets  []setCall
}

func (s *memStore) Decrypt(_ context.Context, path string) (string, error) {
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("%w: cannot decrypt %s", serrors.ErrToolExecutionFailed, path)
	}
	return content, nil
}

func (s *memStore) Set(_ context.Context, path, key, value string) error {
	s.sets = append(s.sets, setCall{Path: path, Key: key, Value: value})
	line := regexp.MustCompile(`(?m)^([ \t]*` + regexp.QuoteMeta(key) + `[ \t]*[:=][ \t]*).*$`)
	s.files[path] = line.ReplaceAllString(s.files[path], "${1}"+strings.ReplaceAll(value, "$", "$$"))
	return nil
}

type cannedRunner map[string]string

func (r cannedRunner) Run(_ context.Context, command string) (string, error) {
	out, ok := r[command]
	if !ok {
		return "", fmt.Errorf("%w: %q exited with status 1", serrors.ErrCommandExecutionFailed, command)
	}
	return out, nil
}

// setupCLITest moves into a fresh directory holding an empty file for every
// key of files and routes the CLI through an in-memory store and runner.
func setupCLITest(t *testing.T, files map[string]string, outputs map[string]string) *memStore {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	tempDir := t.TempDir()
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	for _, env := range []string{configs.EnvBinary, configs.EnvShell, configs.EnvAudit} {
		t.Setenv(env, "")
	}
	t.Setenv("NO_COLOR", "1")

	for name := range files {
		path := filepath.Join(tempDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		// #nosec G306 -- test fixture
		if err := os.WriteFile(path, []byte("sops: {}\n"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	store := &memStore{files: files}
	originalStore, originalRunner := newStore, newRunner
	newStore = func(*configs.Config) sops.Store { return store }
	newRunner = func(*configs.Config) (executor.CommandRunner, error) { return cannedRunner(outputs), nil }

	ResetGlobalState()
	t.Cleanup(func() {
		newStore, newRunner = originalStore, originalRunner
		ResetGlobalState()
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})

	return store
}

// runCLI executes the root command with args and returns combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := GetShellSopsCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	t.Cleanup(func() {
		root.SetOut(nil)
		root.SetErr(nil)
		root.SetArgs(nil)
	})

	err := root.Execute()
	return buf.String(), err
}
