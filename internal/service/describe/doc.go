// Package describe collects build metadata from a repository and renders it
// for build scripts: as a table, YAML, JSON, shell variables or go linker flags.
package describe
