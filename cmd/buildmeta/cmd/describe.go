package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/buildmeta/internal/config"
	"github.com/oshokin/buildmeta/internal/service/describe"
)

func (a *app) describeCmd() *cobra.Command {
	var (
		versionString  string
		format         string
		ldflagsPackage string
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print commit, branch, version label and toolchain in one go.",
		Example: `  buildmeta describe --version 1.20-rc1-20230601
  go build -ldflags "$(buildmeta describe --format ldflags --ldflags-package main)"
  eval "$(buildmeta describe --format env)"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.OutputFormat
			}

			if err := config.ValidateFormat(format); err != nil {
				return err
			}

			if ldflagsPackage == "" {
				ldflagsPackage = a.cfg.LDFlagsPackage
			}

			m, err := describe.Collect(cmd.Context(), a.git, describe.Request{
				Dir:       a.dir,
				Version:   versionString,
				Toolchain: a.cfg.Toolchain,
			})
			if err != nil {
				return err
			}

			return describe.Render(cmd.OutOrStdout(), m, describe.RenderOptions{
				Format:         format,
				LDFlagsPackage: ldflagsPackage,
			})
		},
	}

	cmd.Flags().StringVar(&versionString, "version", "", "version string whose label is reported")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, yaml, json, env, ldflags")
	cmd.Flags().StringVar(&ldflagsPackage, "ldflags-package", "", "package receiving -X values in ldflags format")

	return cmd
}
