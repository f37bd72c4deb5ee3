// File: facade/version.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade

import (
	"github.com/coreos/go-semver/semver"
)

// Version is the library release tag.
const Version = "1.0.0"

// VersionInfo returns the parsed semantic version of the library.
func VersionInfo() *semver.Version {
	return semver.New(Version)
}

// AtLeast reports whether the library version satisfies the given minimum.
// Malformed inputs report false.
func AtLeast(min string) bool {
	m, err := semver.NewVersion(min)
	if err != nil {
		return false
	}
	return !VersionInfo().LessThan(*m)
}
