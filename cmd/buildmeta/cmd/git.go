package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// printQuery wraps a single git query into a command printing its result.
func (a *app) printQuery(use, short string, query func(ctx context.Context, dir string) (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := query(cmd.Context(), a.dir)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
}

func (a *app) commitHashCmd() *cobra.Command {
	return a.printQuery("commit-hash", "Print the abbreviated hash of HEAD.",
		func(ctx context.Context, dir string) (string, error) {
			return a.git.LatestCommitHash(ctx, dir)
		})
}

func (a *app) commitMessageCmd() *cobra.Command {
	return a.printQuery("commit-message", "Print the full message of the latest commit.",
		func(ctx context.Context, dir string) (string, error) {
			return a.git.LatestCommitMessage(ctx, dir)
		})
}

func (a *app) branchCmd() *cobra.Command {
	return a.printQuery("branch", "Print the current branch, or HEAD when detached.",
		func(ctx context.Context, dir string) (string, error) {
			return a.git.BranchName(ctx, dir)
		})
}

func (a *app) gitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "git -- [args...]",
		Short: "Run git with arbitrary arguments and print the trimmed output.",
		Example: `  buildmeta git -- describe --tags --always
  buildmeta git -- rev-list --count HEAD`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.git.Run(cmd.Context(), a.dir, args...)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
}
