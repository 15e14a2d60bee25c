// Package version exposes build metadata of the buildmeta binary itself.
//
// Version, Commit, Branch and BuildTime are injected at build time, typically with
// the output of `buildmeta describe --format ldflags --ldflags-package
// github.com/oshokin/buildmeta/internal/version`.
package version
