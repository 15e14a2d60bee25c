package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireGit skips the test when no git binary is available.
func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(DefaultExecutable); err != nil {
		t.Skip("git is not installed")
	}
}

// runGit runs a git command in dir and fails the test on error.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	out, err := NewGit(nil).Run(context.Background(), dir, args...)
	require.NoError(t, err, "git %v", args)

	return out
}

// initTestRepo creates a repository on branch main with a single commit.
func initTestRepo(t *testing.T, message string) string {
	t.Helper()
	requireGit(t)

	dir := t.TempDir()

	runGit(t, dir, "init", "-q")
	runGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	runGit(t, dir, "config", "user.email", "builder@example.com")
	runGit(t, dir, "config", "user.name", "Builder")
	runGit(t, dir, "config", "commit.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o600))

	runGit(t, dir, "add", "README.md")
	runGit(t, dir, "commit", "-q", "-m", message)

	return dir
}

// TestExecRunner_Repository runs the git queries against a real repository.
func TestExecRunner_Repository(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t, "Add readme\n\nWith a body.")
	g := NewGit(ExecRunner{})
	ctx := context.Background()

	hash, err := g.LatestCommitHash(ctx, dir)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.Equal(t, runGit(t, dir, "rev-parse", "--short", "HEAD"), hash)

	message, err := g.LatestCommitMessage(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, "Add readme\n\nWith a body.", message)

	branch, err := g.BranchName(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, "main", branch)

	inside, err := g.IsInsideWorkTree(ctx, dir)
	require.NoError(t, err)
	require.True(t, inside)

	gitDir, err := g.GitDir(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, ".git"), gitDir)
}

// TestExecRunner_DetachedHEAD shows that a detached checkout reports the literal HEAD.
func TestExecRunner_DetachedHEAD(t *testing.T) {
	t.Parallel()

	dir := initTestRepo(t, "initial")
	runGit(t, dir, "checkout", "-q", "--detach")

	branch, err := NewGit(nil).BranchName(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, DetachedHEAD, branch)
}

// TestExecRunner_NotARepository verifies a non-zero exit becomes an *ExitError with stderr.
// It stays sequential because of t.Setenv.
func TestExecRunner_NotARepository(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	got, err := NewGit(nil).LatestCommitHash(context.Background(), dir)
	require.Empty(t, got)
	require.ErrorIs(t, err, ErrNonZeroExit)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.NotZero(t, exitErr.Code)
	require.NotEmpty(t, exitErr.Stderr)
}

// TestExecRunner_MissingExecutable verifies a missing binary is reported as a spawn failure.
func TestExecRunner_MissingExecutable(t *testing.T) {
	t.Parallel()

	g := NewGit(ExecRunner{}, WithExecutable("definitely-not-a-real-git-binary"))

	got, err := g.BranchName(context.Background(), t.TempDir())
	require.Empty(t, got)
	require.ErrorIs(t, err, ErrSpawnFailed)
}

// TestExecRunner_EmptyCommand rejects a command without a name.
func TestExecRunner_EmptyCommand(t *testing.T) {
	t.Parallel()

	_, err := ExecRunner{}.Run(context.Background(), Command{})
	require.ErrorIs(t, err, errEmptyCommand)
}
