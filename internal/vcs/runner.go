package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command is a single process invocation.
type Command struct {
	// Name is the executable, resolved through PATH unless it contains a separator.
	Name string
	// Args are passed to the executable as-is, without shell interpretation.
	Args []string
	// Dir is the working directory of the child process.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the parent environment.
	Env []string
}

// Runner runs a command and returns its captured standard output.
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands with os/exec. The zero value is ready to use.
type ExecRunner struct{}

// Compile-time interface compliance check.
var _ Runner = ExecRunner{}

// Run starts cmd, waits for it to exit and returns stdout.
// Stdout is discarded when the command fails.
func (ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	if cmd.Name == "" {
		return nil, errEmptyCommand
	}

	path, err := exec.LookPath(cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, cmd.Name, err)
	}

	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err = c.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, &ExitError{
			Name:   cmd.Name,
			Args:   append([]string(nil), cmd.Args...),
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	}

	return nil, fmt.Errorf("%w: %s: %w", ErrSpawnFailed, cmd.Name, err)
}
