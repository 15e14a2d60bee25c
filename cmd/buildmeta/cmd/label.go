package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/buildmeta/internal/release"
)

// errNoLabel is returned when a version string carries no label.
var errNoLabel = errors.New("version has no label")

func (a *app) labelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "label [version]",
		Short: "Print the text between the first and the last '-' of a version.",
		Long: `Print the label of a version string: everything between its first and last '-'.

  1.20-rc1-20230601  ->  rc1
  a-b-c-d            ->  b-c-d

Versions with fewer than two dashes have no label and the command fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, ok := release.ParseLabel(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", errNoLabel, args[0])
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), label)

			return err
		},
	}
}
