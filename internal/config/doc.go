// Package config defines the buildmeta settings file and provides helpers to
// load, validate and save it in YAML format.
//
// The file is optional: LoadOrDefault returns defaults when it is missing.
package config
