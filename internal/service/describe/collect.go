package describe

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/oshokin/buildmeta/internal/domain/metadata"
	"github.com/oshokin/buildmeta/internal/logger"
	"github.com/oshokin/buildmeta/internal/release"
	"github.com/oshokin/buildmeta/internal/toolchain"
)

// Querier answers the git questions Collect asks. *vcs.Git implements it.
type Querier interface {
	LatestCommitHash(ctx context.Context, dir string) (string, error)
	LatestCommitMessage(ctx context.Context, dir string) (string, error)
	BranchName(ctx context.Context, dir string) (string, error)
}

// Request selects what Collect gathers.
type Request struct {
	// Dir is the repository working directory.
	Dir string
	// Version is an optional version string whose label is parsed.
	Version string
	// Toolchain is resolved when a language version is set.
	Toolchain toolchain.Config
}

// Collect runs the git queries in parallel and assembles the metadata.
// The first failing query cancels the others and its error is returned.
func Collect(ctx context.Context, q Querier, req Request) (*metadata.Metadata, error) {
	ctx = logger.WithKV(ctx, "dir", req.Dir)

	var m metadata.Metadata

	if req.Toolchain.LanguageVersion != 0 {
		spec, err := toolchain.Resolve(req.Toolchain)
		if err != nil {
			return nil, fmt.Errorf("resolve toolchain: %w", err)
		}

		m.Toolchain = spec.String()
	}

	g, groupCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hash, err := q.LatestCommitHash(groupCtx, req.Dir)
		if err != nil {
			return fmt.Errorf("commit hash: %w", err)
		}

		m.CommitHash = hash

		return nil
	})

	g.Go(func() error {
		message, err := q.LatestCommitMessage(groupCtx, req.Dir)
		if err != nil {
			return fmt.Errorf("commit message: %w", err)
		}

		m.CommitMessage = message

		return nil
	})

	g.Go(func() error {
		branch, err := q.BranchName(groupCtx, req.Dir)
		if err != nil {
			return fmt.Errorf("branch name: %w", err)
		}

		m.Branch = branch

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if req.Version != "" {
		m.Version = req.Version
		m.Label, m.HasLabel = release.ParseLabel(req.Version)
	}

	if m.Detached() {
		logger.Warnf(ctx, "HEAD is detached, branch is reported as %q", m.Branch)
	}

	logger.DebugKV(ctx, "metadata collected",
		"commit", m.CommitHash,
		"branch", m.Branch,
		"label", m.Label)

	return &m, nil
}
