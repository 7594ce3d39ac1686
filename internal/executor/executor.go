// Package executor runs external programs and captures their output.
//
// It backs both the sops adapter and the runner for directive commands.
// Commands never receive stdin and are not retried.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// waitDelay bounds how long Execute waits for output pipes after the
// context is done, so orphaned grandchildren cannot hold a run open.
const waitDelay = 2 * time.Second

// Result holds the output and exit status of a command.
type Result struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// Options configures command execution.
type Options struct {
	// Env holds variables appended to the current environment.
	Env map[string]string

	// StderrWriter receives a copy of stderr when set.
	StderrWriter io.Writer
}

// Option modifies Options.
type Option func(*Options)

// WithEnv adds environment variables.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		if o.Env == nil {
			o.Env = make(map[string]string)
		}
		for k, v := range env {
			o.Env[k] = v
		}
	}
}

// WithStderrWriter tees stderr to w.
func WithStderrWriter(w io.Writer) Option {
	return func(o *Options) {
		o.StderrWriter = w
	}
}

// CommandExecutor runs one program with fixed arguments.
type CommandExecutor struct {
	program string
	args    []string
}

// New creates a CommandExecutor.
func New(program string, args ...string) *CommandExecutor {
	return &CommandExecutor{program: program, args: args}
}

// Execute runs the command to completion.
//
// A non-zero exit returns both the Result and an error wrapping *exec.ExitError.
// A failure to start returns a Result with ExitCode -1.
func (c *CommandExecutor) Execute(ctx context.Context, opts ...Option) (*Result, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	cmd := exec.CommandContext(ctx, c.program, c.args...)
	cmd.WaitDelay = waitDelay
	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	if options.StderrWriter != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, options.StderrWriter)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()

	result := &Result{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = -1
	}

	return result, fmt.Errorf("running %s: %w", c.program, err)
}
