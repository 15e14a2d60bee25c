// Package metadata contains the build metadata collected from a repository.
package metadata
