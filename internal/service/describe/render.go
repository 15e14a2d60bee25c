package describe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/buildmeta/internal/config"
	"github.com/oshokin/buildmeta/internal/domain/metadata"
)

var (
	// ErrUnknownFormat is returned by Render for unsupported formats.
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrUnquotableLDFlag is returned when a value contains both ' and ".
	ErrUnquotableLDFlag = errors.New("value cannot be quoted for -ldflags")
)

// RenderOptions tunes Render.
type RenderOptions struct {
	// Format is one of the config.Format* constants.
	Format string
	// LDFlagsPackage is the package prefix used by the ldflags format.
	LDFlagsPackage string
}

// Render writes m to w in the requested format.
func Render(w io.Writer, m *metadata.Metadata, opts RenderOptions) error {
	switch opts.Format {
	case config.FormatText, "":
		return renderTable(w, m)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}

		return nil
	case config.FormatEnv:
		return renderEnv(w, m)
	case config.FormatLDFlags:
		pkg := opts.LDFlagsPackage
		if pkg == "" {
			pkg = config.DefaultLDFlagsPackage
		}

		flags, err := LDFlags(m, pkg)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, flags)

		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// LDFlags returns -X assignments for the Commit, Branch and Version variables of pkg.
// Version is omitted when m carries none.
//
// Assignments are quoted the way the go command splits -ldflags: a field may be
// wrapped in single or double quotes, with no escapes inside. A value holding
// both quote characters cannot be passed and yields ErrUnquotableLDFlag.
func LDFlags(m *metadata.Metadata, pkg string) (string, error) {
	pairs := [][2]string{
		{"Commit", m.CommitHash},
		{"Branch", m.Branch},
	}

	if m.Version != "" {
		pairs = append(pairs, [2]string{"Version", m.Version})
	}

	flags := make([]string, 0, len(pairs))
	for _, p := range pairs {
		assignment, err := quoteLDFlag(pkg + "." + p[0] + "=" + p[1])
		if err != nil {
			return "", err
		}

		flags = append(flags, "-X "+assignment)
	}

	return strings.Join(flags, " "), nil
}

func quoteLDFlag(s string) (string, error) {
	hasSingle := strings.ContainsRune(s, '\'')
	hasDouble := strings.ContainsRune(s, '"')

	switch {
	case hasSingle && hasDouble:
		return "", fmt.Errorf("%w: %s", ErrUnquotableLDFlag, s)
	case hasSingle:
		return `"` + s + `"`, nil
	case hasDouble || strings.ContainsAny(s, " \t\n\r"):
		return "'" + s + "'", nil
	default:
		return s, nil
	}
}

func renderTable(w io.Writer, m *metadata.Metadata) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Commit", m.CommitHash})
	t.AppendRow(table.Row{"Branch", branchCell(m)})
	t.AppendRow(table.Row{"Subject", m.Subject()})

	if m.Version != "" {
		t.AppendRow(table.Row{"Version", m.Version})
		t.AppendRow(table.Row{"Label", labelCell(m)})
	}

	if m.Toolchain != "" {
		t.AppendRow(table.Row{"Toolchain", m.Toolchain})
	}

	t.Render()

	return nil
}

func branchCell(m *metadata.Metadata) string {
	if m.Detached() {
		return m.Branch + " (detached)"
	}

	return m.Branch
}

func labelCell(m *metadata.Metadata) string {
	if !m.HasLabel {
		return "-"
	}

	return m.Label
}

func renderEnv(w io.Writer, m *metadata.Metadata) error {
	vars := []struct {
		name  string
		value string
	}{
		{"BUILD_COMMIT_HASH", m.CommitHash},
		{"BUILD_COMMIT_MESSAGE", m.CommitMessage},
		{"BUILD_BRANCH", m.Branch},
		{"BUILD_VERSION", m.Version},
		{"BUILD_VERSION_LABEL", m.Label},
		{"BUILD_TOOLCHAIN", m.Toolchain},
	}

	for _, v := range vars {
		if _, err := fmt.Fprintf(w, "%s=%s\n", v.name, shellQuote(v.value)); err != nil {
			return err
		}
	}

	return nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
