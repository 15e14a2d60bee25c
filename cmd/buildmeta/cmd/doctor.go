package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/buildmeta/internal/service/doctor"
)

func (a *app) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that git and the repository are ready to serve build metadata.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := doctor.New(a.git, nil).Run(cmd.Context(), a.dir)
			report.Render(cmd.OutOrStdout())

			return report.Err()
		},
	}
}
