package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/buildmeta/internal/logger"
	"github.com/oshokin/buildmeta/internal/toolchain"
)

// Output formats accepted by OutputFormat.
const (
	FormatText    = "text"
	FormatYAML    = "yaml"
	FormatJSON    = "json"
	FormatEnv     = "env"
	FormatLDFlags = "ldflags"
)

const (
	// DefaultConfigFilename is the default settings file, looked up in the working directory.
	DefaultConfigFilename = "buildmeta.yaml"

	// DefaultGitExecutable is the git binary looked up on PATH.
	DefaultGitExecutable = "git"

	// DefaultCommandTimeout bounds a single git command.
	DefaultCommandTimeout = 30 * time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultLDFlagsPackage receives -X values when nothing else is configured.
	DefaultLDFlagsPackage = "main"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

// Config holds settings shared by all buildmeta commands.
type Config struct {
	// GitExecutable is a git binary name looked up on PATH, or a path.
	// Relative paths resolve against the directory buildmeta is started from.
	GitExecutable string `yaml:"git_executable"`
	// CommandTimeout bounds each git invocation.
	CommandTimeout time.Duration `yaml:"command_timeout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// OutputFormat is the default format of the describe command.
	OutputFormat string `yaml:"output_format"`
	// LDFlagsPackage is the Go package whose variables receive -X values.
	LDFlagsPackage string `yaml:"ldflags_package"`
	// Toolchain is the requested toolchain.
	Toolchain toolchain.Config `yaml:"toolchain"`
}

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidLogLevel is returned for log levels logger.ParseLogLevel rejects.
	errInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidFormat is returned for unknown output formats.
	ErrInvalidFormat = errors.New("invalid output format")
)

// Formats returns every supported output format.
func Formats() []string {
	return []string{FormatText, FormatYAML, FormatJSON, FormatEnv, FormatLDFlags}
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	//nolint:errcheck // Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills in defaults and rejects malformed values.
// The toolchain section is left to toolchain.Resolve.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.GitExecutable == "" {
		cfg.GitExecutable = DefaultGitExecutable
	}

	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = DefaultCommandTimeout
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.LogLevel)
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatText
	}

	if err := ValidateFormat(cfg.OutputFormat); err != nil {
		return err
	}

	if cfg.LDFlagsPackage == "" {
		cfg.LDFlagsPackage = DefaultLDFlagsPackage
	}

	return nil
}

// ValidateFormat reports whether format is one of Formats.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats(), format) {
		return fmt.Errorf("%w: %q (want one of %v)", ErrInvalidFormat, format, Formats())
	}

	return nil
}
