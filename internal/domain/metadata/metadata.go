package metadata

import "strings"

// detachedHEAD is the branch name git reports without a checked-out branch.
const detachedHEAD = "HEAD"

// Metadata describes the checkout a build is produced from.
type Metadata struct {
	// CommitHash is the abbreviated hash of HEAD.
	CommitHash string `yaml:"commit_hash" json:"commit_hash"`
	// CommitMessage is the full message of HEAD, outer whitespace trimmed.
	CommitMessage string `yaml:"commit_message" json:"commit_message"`
	// Branch is the checked-out branch, or "HEAD" when detached.
	Branch string `yaml:"branch" json:"branch"`
	// Version is the version string supplied by the caller, if any.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// Label is the pre-release label parsed from Version.
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	// HasLabel tells an empty label apart from a missing one.
	HasLabel bool `yaml:"has_label" json:"has_label"`
	// Toolchain is the resolved toolchain, empty when none was requested.
	Toolchain string `yaml:"toolchain,omitempty" json:"toolchain,omitempty"`
}

// Detached reports whether HEAD was not on a branch.
func (m *Metadata) Detached() bool {
	return m.Branch == detachedHEAD
}

// Subject returns the first line of the commit message.
func (m *Metadata) Subject() string {
	subject, _, _ := strings.Cut(m.CommitMessage, "\n")

	return strings.TrimRight(subject, "\r")
}
