// Package toolchain records the language version a build requests
// and resolves it into a concrete toolchain spec.
package toolchain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Vendors understood by Resolve.
const (
	VendorGo   = "go"
	VendorJava = "java"
)

var (
	// ErrLanguageVersionUnset is returned when no language version was requested.
	ErrLanguageVersionUnset = errors.New("language version is not set")
	// ErrInvalidLanguageVersion is returned for versions below 1.
	ErrInvalidLanguageVersion = errors.New("invalid language version")
	// ErrUnknownVendor is returned for vendors Resolve does not know.
	ErrUnknownVendor = errors.New("unknown toolchain vendor")
)

// Config is the toolchain part of a build configuration.
type Config struct {
	// LanguageVersion is the requested language version; zero means unset.
	LanguageVersion int `yaml:"language_version,omitempty" json:"language_version,omitempty"`
	// Vendor selects the toolchain family; empty means VendorJava.
	Vendor string `yaml:"vendor,omitempty" json:"vendor,omitempty"`
}

// Spec is a resolved toolchain request.
type Spec struct {
	Vendor          string
	LanguageVersion int
}

// String renders the spec the way the vendor spells versions, e.g. "java 21" or "go1.22".
func (s Spec) String() string {
	if s.Vendor == VendorGo {
		return "go1." + strconv.Itoa(s.LanguageVersion)
	}

	return s.Vendor + " " + strconv.Itoa(s.LanguageVersion)
}

// SetLanguageVersion sets the requested language version on target.
// The value is not checked here; Resolve rejects bad values.
func SetLanguageVersion(target *Config, version int) {
	target.LanguageVersion = version
}

// Resolve validates cfg and returns the toolchain it requests.
func Resolve(cfg Config) (Spec, error) {
	vendor := strings.ToLower(strings.TrimSpace(cfg.Vendor))
	if vendor == "" {
		vendor = VendorJava
	}

	if vendor != VendorGo && vendor != VendorJava {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownVendor, cfg.Vendor)
	}

	switch {
	case cfg.LanguageVersion == 0:
		return Spec{}, ErrLanguageVersionUnset
	case cfg.LanguageVersion < 0:
		return Spec{}, fmt.Errorf("%w: %d", ErrInvalidLanguageVersion, cfg.LanguageVersion)
	}

	return Spec{
		Vendor:          vendor,
		LanguageVersion: cfg.LanguageVersion,
	}, nil
}
