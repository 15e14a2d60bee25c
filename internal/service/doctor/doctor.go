package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/mitchellh/go-ps"

	"github.com/oshokin/buildmeta/internal/logger"
	"github.com/oshokin/buildmeta/internal/vcs"
)

// Status is the outcome of a single check.
type Status string

// Check outcomes.
const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// indexLockFilename is created by git while it rewrites the index.
const indexLockFilename = "index.lock"

// ErrChecksFailed is returned by Report.Err when at least one check failed.
var ErrChecksFailed = errors.New("doctor checks failed")

// Inspector is the subset of *vcs.Git used by the checks.
type Inspector interface {
	Executable() string
	Run(ctx context.Context, dir string, args ...string) (string, error)
	IsInsideWorkTree(ctx context.Context, dir string) (bool, error)
	BranchName(ctx context.Context, dir string) (string, error)
	GitDir(ctx context.Context, dir string) (string, error)
}

// ProcessLister lists running processes.
type ProcessLister func() ([]ps.Process, error)

// Check is one line of the report.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report holds the checks in the order they ran.
type Report struct {
	Checks []Check
}

// Err returns ErrChecksFailed when any check failed.
func (r *Report) Err() error {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return ErrChecksFailed
		}
	}

	return nil
}

// Render writes the report as a table.
// Statuses are coloured only when w is a terminal.
func (r *Report) Render(w io.Writer) {
	colored := isTerminal(w)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Check", "Status", "Detail"})

	for _, c := range r.Checks {
		t.AppendRow(table.Row{c.Name, formatStatus(c.Status, colored), c.Detail})
	}

	t.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func formatStatus(s Status, colored bool) string {
	if !colored {
		return string(s)
	}

	switch s {
	case StatusOK:
		return text.FgGreen.Sprint(string(s))
	case StatusWarn:
		return text.FgYellow.Sprint(string(s))
	default:
		return text.FgRed.Sprint(string(s))
	}
}

// Doctor runs the checks.
type Doctor struct {
	git       Inspector
	processes ProcessLister
}

// New returns a Doctor; a nil lister uses the system process table.
func New(git Inspector, processes ProcessLister) *Doctor {
	if processes == nil {
		processes = ps.Processes
	}

	return &Doctor{
		git:       git,
		processes: processes,
	}
}

// Run checks dir. Later checks are skipped once git cannot run or dir is not a work tree.
func (d *Doctor) Run(ctx context.Context, dir string) *Report {
	ctx = logger.WithName(ctx, "doctor")
	report := new(Report)

	add := func(c Check) {
		logger.DebugKV(ctx, "check finished", "check", c.Name, "status", c.Status, "detail", c.Detail)
		report.Checks = append(report.Checks, c)
	}

	gitVersion, err := d.git.Run(ctx, dir, "--version")
	if err != nil {
		add(Check{Name: "git executable", Status: StatusFail, Detail: err.Error()})
		return report
	}

	add(Check{Name: "git executable", Status: StatusOK, Detail: d.git.Executable() + ": " + gitVersion})

	inside, err := d.git.IsInsideWorkTree(ctx, dir)
	if err != nil || !inside {
		detail := dir + " is not inside a git work tree"
		if err != nil {
			detail = err.Error()
		}

		add(Check{Name: "work tree", Status: StatusFail, Detail: detail})

		return report
	}

	add(Check{Name: "work tree", Status: StatusOK, Detail: dir})
	add(d.checkBranch(ctx, dir))
	add(d.checkIndexLock(ctx, dir))

	return report
}

func (d *Doctor) checkBranch(ctx context.Context, dir string) Check {
	branch, err := d.git.BranchName(ctx, dir)

	switch {
	case err != nil:
		return Check{Name: "branch", Status: StatusFail, Detail: err.Error()}
	case branch == vcs.DetachedHEAD:
		return Check{Name: "branch", Status: StatusWarn, Detail: "HEAD is detached, branch will be reported as HEAD"}
	default:
		return Check{Name: "branch", Status: StatusOK, Detail: branch}
	}
}

// checkIndexLock flags an index.lock left behind by a git process that no longer runs.
func (d *Doctor) checkIndexLock(ctx context.Context, dir string) Check {
	const name = "index lock"

	gitDir, err := d.git.GitDir(ctx, dir)
	if err != nil {
		return Check{Name: name, Status: StatusFail, Detail: err.Error()}
	}

	lock := filepath.Join(gitDir, indexLockFilename)

	if _, err = os.Stat(lock); errors.Is(err, os.ErrNotExist) {
		return Check{Name: name, Status: StatusOK, Detail: "no lock"}
	} else if err != nil {
		return Check{Name: name, Status: StatusFail, Detail: fmt.Sprintf("stat %s: %v", lock, err)}
	}

	running, err := d.gitProcessRunning()
	if err != nil {
		return Check{Name: name, Status: StatusWarn, Detail: fmt.Sprintf("%s exists, process list unavailable: %v", lock, err)}
	}

	if running {
		return Check{Name: name, Status: StatusWarn, Detail: lock + " is held by a running git process"}
	}

	return Check{Name: name, Status: StatusFail, Detail: lock + " is stale, remove it"}
}

func (d *Doctor) gitProcessRunning() (bool, error) {
	processes, err := d.processes()
	if err != nil {
		return false, err
	}

	self := os.Getpid()

	for _, p := range processes {
		if p.Pid() == self {
			continue
		}

		executable := strings.TrimSuffix(strings.ToLower(p.Executable()), ".exe")
		if executable == "git" {
			return true, nil
		}
	}

	return false, nil
}
