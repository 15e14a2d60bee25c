package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/buildmeta/internal/config"
	"github.com/oshokin/buildmeta/internal/logger"
	"github.com/oshokin/buildmeta/internal/vcs"
	"github.com/oshokin/buildmeta/internal/version"
)

// app carries state shared by all subcommands once the root pre-run has finished.
type app struct {
	// configPath stores the path to the configuration YAML file.
	configPath string
	// dir is the repository working directory passed to every git query.
	dir string
	// logLevel overrides the configured log level when set.
	logLevel string
	// quiet limits logging to errors.
	quiet bool

	cfg *config.Config
	git *vcs.Git
}

// Execute runs the buildmeta CLI and exits with non-zero status on error.
func Execute() {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:   "buildmeta",
		Short: "Build metadata helpers for build scripts.",
		Long: `Query version-control metadata for builds and print it in a script-friendly form.

Every command runs git in the directory given by --dir (the current directory
by default) and writes the result to stdout. Logs go to stderr.
Settings are read from buildmeta.yaml when it exists.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "repository working directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(
		a.commitHashCmd(),
		a.commitMessageCmd(),
		a.branchCmd(),
		a.gitCmd(),
		a.labelCmd(),
		a.toolchainCmd(),
		a.describeCmd(),
		a.doctorCmd(),
	)

	version.AttachCobraVersionCommand(root)

	return root
}

// setup loads the configuration, applies logging flags and builds the git client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}

	// The flag only applies to this run; cfg may be saved back to disk.
	levelName := cfg.LogLevel
	if a.logLevel != "" {
		levelName = a.logLevel
	}

	level, ok := logger.ParseLogLevel(levelName)
	if !ok {
		return fmt.Errorf("invalid log level %q", levelName)
	}

	logger.SetLevel(level)

	l := logger.Logger()
	if a.quiet {
		l = l.WithOptions(logger.WithLevel(zapcore.ErrorLevel))
	}

	dir, err := filepath.Abs(a.dir)
	if err != nil {
		return fmt.Errorf("resolve directory %s: %w", a.dir, err)
	}

	a.dir = dir
	a.cfg = cfg
	a.git = vcs.NewGit(vcs.ExecRunner{},
		vcs.WithExecutable(cfg.GitExecutable),
		vcs.WithTimeout(cfg.CommandTimeout))

	ctx := logger.ToContext(cmd.Context(), l.Named("buildmeta"))
	cmd.SetContext(logger.WithName(ctx, cmd.Name()))

	return nil
}
