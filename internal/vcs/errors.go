package vcs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpawnFailed is returned when the executable is missing, not on PATH or cannot be started.
	ErrSpawnFailed = errors.New("spawn process")
	// ErrNonZeroExit is matched by *ExitError when a command exits with a failure status.
	ErrNonZeroExit = errors.New("command exited with non-zero status")
	// ErrInvalidEncoding is returned when command output is not valid UTF-8.
	ErrInvalidEncoding = errors.New("output is not valid UTF-8")
	// errEmptyCommand is returned when a Command has no executable name.
	errEmptyCommand = errors.New("command name must be provided")
)

// ExitError describes a command that ran but exited with a non-zero status.
type ExitError struct {
	// Name is the executable that was run.
	Name string
	// Args are the arguments passed to the executable.
	Args []string
	// Code is the process exit code, or -1 when killed by a signal.
	Code int
	// Stderr is the trimmed standard error output.
	Stderr string
}

func (e *ExitError) Error() string {
	var b strings.Builder

	b.WriteString(e.Name)

	if len(e.Args) > 0 {
		b.WriteByte(' ')
		b.WriteString(e.Args[0])
	}

	fmt.Fprintf(&b, ": exit status %d", e.Code)

	if e.Stderr != "" {
		b.WriteString(": ")
		b.WriteString(e.Stderr)
	}

	return b.String()
}

// Is reports ErrNonZeroExit as a match so callers can use errors.Is.
func (e *ExitError) Is(target error) bool {
	return target == ErrNonZeroExit
}

func isExitError(err error) bool {
	var exitErr *ExitError

	return errors.As(err, &exitErr)
}
