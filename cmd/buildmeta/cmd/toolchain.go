package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/buildmeta/internal/config"
	"github.com/oshokin/buildmeta/internal/logger"
	"github.com/oshokin/buildmeta/internal/toolchain"
)

func (a *app) toolchainCmd() *cobra.Command {
	var (
		languageVersion int
		vendor          string
	)

	cmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Show or set the requested toolchain language version.",
		Long: `Without flags, print the toolchain requested by the configuration file.

With --set, store the language version in the configuration file first.
The value is validated when the toolchain is resolved.

Saving rewrites the whole configuration file: comments in it are lost and
unset keys are written with their defaults. Flags such as --log-level are
not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()

			if flags.Changed("set") || flags.Changed("vendor") {
				if flags.Changed("set") {
					toolchain.SetLanguageVersion(&a.cfg.Toolchain, languageVersion)
				}

				if flags.Changed("vendor") {
					a.cfg.Toolchain.Vendor = vendor
				}

				if _, err := toolchain.Resolve(a.cfg.Toolchain); err != nil {
					return err
				}

				if err := config.Save(a.configPath, a.cfg); err != nil {
					return err
				}

				logger.InfoKV(ctx, "Toolchain saved",
					"path", a.configPath,
					"language_version", a.cfg.Toolchain.LanguageVersion)
			}

			spec, err := toolchain.Resolve(a.cfg.Toolchain)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), spec)

			return err
		},
	}

	cmd.Flags().IntVar(&languageVersion, "set", 0, "language version to request")
	cmd.Flags().StringVar(&vendor, "vendor", "", "toolchain vendor: java or go")

	return cmd
}
