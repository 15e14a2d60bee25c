package vcs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oshokin/buildmeta/internal/logger"
)

const (
	// DefaultExecutable is the git binary looked up on PATH.
	DefaultExecutable = "git"

	// DetachedHEAD is what `rev-parse --abbrev-ref HEAD` prints without a checked-out branch.
	DetachedHEAD = "HEAD"
)

// gitEnv keeps git output stable and non-interactive.
//
//nolint:gochecknoglobals // Read-only.
var gitEnv = []string{
	"GIT_TERMINAL_PROMPT=0",
	"LC_ALL=C",
}

// Git runs git commands through a Runner.
type Git struct {
	// runner spawns the git process.
	runner Runner
	// executable is the git binary name or path.
	executable string
	// timeout bounds a single command; zero means only ctx applies.
	timeout time.Duration
}

// Option configures Git.
type Option func(*Git)

// WithExecutable overrides the git binary.
// A bare name is looked up on PATH; a relative path such as ./tools/git is made
// absolute against the current directory, not the directory commands run in.
func WithExecutable(name string) Option {
	return func(g *Git) {
		if name == "" {
			return
		}

		if strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) {
			if abs, err := filepath.Abs(name); err == nil {
				name = abs
			}
		}

		g.executable = name
	}
}

// WithTimeout bounds every command run by Git.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Git) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// NewGit returns a Git using runner, or ExecRunner when runner is nil.
func NewGit(runner Runner, opts ...Option) *Git {
	if runner == nil {
		runner = ExecRunner{}
	}

	g := &Git{
		runner:     runner,
		executable: DefaultExecutable,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Executable returns the configured git binary.
func (g *Git) Executable() string {
	return g.executable
}

// Run executes git with args in dir and returns stdout decoded as UTF-8,
// with leading and trailing whitespace removed.
func (g *Git) Run(ctx context.Context, dir string, args ...string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	started := time.Now()

	out, err := g.runner.Run(ctx, Command{
		Name: g.executable,
		Args: args,
		Dir:  dir,
		Env:  gitEnv,
	})
	if err != nil {
		logger.DebugKV(ctx, "git command failed",
			"args", args,
			"dir", dir,
			"error", err)

		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	if !utf8.Valid(out) {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), ErrInvalidEncoding)
	}

	logger.DebugKV(ctx, "git command finished",
		"args", args,
		"dir", dir,
		"duration", time.Since(started),
		"bytes", len(out))

	return strings.TrimSpace(string(out)), nil
}

// LatestCommitHash returns the abbreviated hash of HEAD.
func (g *Git) LatestCommitHash(ctx context.Context, dir string) (string, error) {
	return g.Run(ctx, dir, "rev-parse", "--short", "HEAD")
}

// LatestCommitMessage returns the full message of the most recent commit.
// Only outer whitespace is trimmed; line breaks inside the message are kept as-is.
func (g *Git) LatestCommitMessage(ctx context.Context, dir string) (string, error) {
	return g.Run(ctx, dir, "log", "-1", "--pretty=%B")
}

// BranchName returns the checked-out branch, or DetachedHEAD when none is.
func (g *Git) BranchName(ctx context.Context, dir string) (string, error) {
	return g.Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// IsInsideWorkTree reports whether dir belongs to a git work tree.
// A non-zero exit from git means "no" rather than an error.
func (g *Git) IsInsideWorkTree(ctx context.Context, dir string) (bool, error) {
	out, err := g.Run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		if isExitError(err) {
			return false, nil
		}

		return false, err
	}

	return out == "true", nil
}

// GitDir returns the absolute path of the repository's .git directory for dir.
func (g *Git) GitDir(ctx context.Context, dir string) (string, error) {
	out, err := g.Run(ctx, dir, "rev-parse", "--git-dir")
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}

	return filepath.Clean(out), nil
}
