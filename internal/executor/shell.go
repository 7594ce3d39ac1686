package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	serrors "github.com/PolarWolf314/shell-sops/internal/errors"
)

// CommandRunner produces the value for a directive by running its command.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// ShellRunner runs directive commands through a shell, as `<Program> <Flag> <command>`.
type ShellRunner struct {
	Program string
	Flag    string
	Env     map[string]string

	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration

	// Stderr receives a live copy of each command's stderr when set.
	Stderr io.Writer
}

// NewShellRunner returns a runner that uses `sh -c`.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{Program: "sh", Flag: "-c"}
}

// Run executes command with no stdin and returns stdout without its trailing newline.
func (r *ShellRunner) Run(ctx context.Context, command string) (string, error) {
	program, flag := r.Program, r.Flag
	if program == "" {
		program = "sh"
	}
	if flag == "" {
		flag = "-c"
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	opts := []Option{WithEnv(r.Env)}
	if r.Stderr != nil {
		opts = append(opts, WithStderrWriter(r.Stderr))
	}

	result, err := New(program, flag, command).Execute(ctx, opts...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			if r.Timeout > 0 {
				return "", fmt.Errorf("%w: %q timed out after %s", serrors.ErrCommandExecutionFailed, command, r.Timeout)
			}
			return "", fmt.Errorf("%w: %q: %v", serrors.ErrCommandExecutionFailed, command, ctx.Err())
		}
		stderr := ""
		if result != nil {
			stderr = strings.TrimSpace(result.Stderr)
		}
		if stderr != "" {
			return "", fmt.Errorf("%w: %q: %v: %s", serrors.ErrCommandExecutionFailed, command, err, stderr)
		}
		return "", fmt.Errorf("%w: %q: %v", serrors.ErrCommandExecutionFailed, command, err)
	}

	return TrimTrailingNewline(string(result.Stdout)), nil
}

// TrimTrailingNewline strips trailing \n and \r characters only.
func TrimTrailingNewline(s string) string {
	return strings.TrimRight(s, "\r\n")
}
