package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/buildmeta/internal/vcs"
)

// fakeInspector answers checks from fields.
type fakeInspector struct {
	versionErr error
	inside     bool
	branch     string
	gitDir     string
}

func (f *fakeInspector) Executable() string { return "git" }

func (f *fakeInspector) Run(_ context.Context, _ string, _ ...string) (string, error) {
	if f.versionErr != nil {
		return "", f.versionErr
	}

	return "git version 2.45.0", nil
}

func (f *fakeInspector) IsInsideWorkTree(context.Context, string) (bool, error) {
	return f.inside, nil
}

func (f *fakeInspector) BranchName(context.Context, string) (string, error) {
	return f.branch, nil
}

func (f *fakeInspector) GitDir(context.Context, string) (string, error) {
	return f.gitDir, nil
}

// fakeProcess implements ps.Process.
type fakeProcess struct {
	pid        int
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

func listing(names ...string) ProcessLister {
	return func() ([]ps.Process, error) {
		out := make([]ps.Process, 0, len(names))
		for i, name := range names {
			out = append(out, fakeProcess{pid: 100000 + i, executable: name})
		}

		return out, nil
	}
}

func statuses(r *Report) []Status {
	out := make([]Status, 0, len(r.Checks))
	for _, c := range r.Checks {
		out = append(out, c.Status)
	}

	return out
}

// TestRun_Healthy passes every check on a clean repository.
func TestRun_Healthy(t *testing.T) {
	t.Parallel()

	insp := &fakeInspector{inside: true, branch: "main", gitDir: t.TempDir()}
	report := New(insp, listing("bash")).Run(context.Background(), "/repo")

	require.Equal(t, []Status{StatusOK, StatusOK, StatusOK, StatusOK}, statuses(report))
	require.NoError(t, report.Err())

	var buf bytes.Buffer
	report.Render(&buf)
	require.Contains(t, buf.String(), "git version 2.45.0")
	require.Contains(t, buf.String(), "index lock")
	require.NotContains(t, buf.String(), "\x1b[")
}

// TestFormatStatus colours statuses only on request.
func TestFormatStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, "fail", formatStatus(StatusFail, false))
	require.Contains(t, formatStatus(StatusFail, true), "fail")
}

// TestRun_GitMissing stops after the executable check.
func TestRun_GitMissing(t *testing.T) {
	t.Parallel()

	insp := &fakeInspector{versionErr: vcs.ErrSpawnFailed}
	report := New(insp, listing()).Run(context.Background(), "/repo")

	require.Equal(t, []Status{StatusFail}, statuses(report))
	require.ErrorIs(t, report.Err(), ErrChecksFailed)
}

// TestRun_NotWorkTree stops after the work tree check.
func TestRun_NotWorkTree(t *testing.T) {
	t.Parallel()

	report := New(&fakeInspector{}, listing()).Run(context.Background(), "/tmp")

	require.Equal(t, []Status{StatusOK, StatusFail}, statuses(report))
	require.Contains(t, report.Checks[1].Detail, "/tmp")
}

// TestRun_Detached only warns.
func TestRun_Detached(t *testing.T) {
	t.Parallel()

	insp := &fakeInspector{inside: true, branch: vcs.DetachedHEAD, gitDir: t.TempDir()}
	report := New(insp, listing()).Run(context.Background(), "/repo")

	require.Equal(t, StatusWarn, report.Checks[2].Status)
	require.NoError(t, report.Err())
}

// TestRun_IndexLock tells a lock held by a running git apart from a stale one.
func TestRun_IndexLock(t *testing.T) {
	t.Parallel()

	gitDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, indexLockFilename), nil, 0o600))

	insp := &fakeInspector{inside: true, branch: "main", gitDir: gitDir}

	held := New(insp, listing("bash", "git.exe")).Run(context.Background(), "/repo")
	require.Equal(t, StatusWarn, held.Checks[3].Status)
	require.NoError(t, held.Err())

	stale := New(insp, listing("bash")).Run(context.Background(), "/repo")
	require.Equal(t, StatusFail, stale.Checks[3].Status)
	require.Contains(t, stale.Checks[3].Detail, "stale")
	require.ErrorIs(t, stale.Err(), ErrChecksFailed)

	broken := New(insp, func() ([]ps.Process, error) { return nil, errors.New("denied") }).
		Run(context.Background(), "/repo")
	require.Equal(t, StatusWarn, broken.Checks[3].Status)
}
