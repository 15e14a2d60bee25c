// Package release extracts metadata from version strings.
package release

import "strings"

// ParseLabel returns the text strictly between the first and the last '-' of version.
//
// It reports false when version has fewer than two dashes:
//
//	ParseLabel("1.20-rc1-20230601") // "rc1", true
//	ParseLabel("a-b-c-d")           // "b-c-d", true
//	ParseLabel("1.20-rc1")          // "", false
func ParseLabel(version string) (string, bool) {
	first := strings.IndexByte(version, '-')
	last := strings.LastIndexByte(version, '-')

	if first == -1 || first == last {
		return "", false
	}

	return version[first+1 : last], true
}
