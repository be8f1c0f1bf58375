// Package version reports the pipewatch build version.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/pipewatch/pkg/version.version=v1.2.3 \
//	  -X github.com/rshade/pipewatch/pkg/version.gitCommit=$(git rev-parse --short HEAD)"
//
//nolint:gochecknoglobals // Overridden via ldflags.
var (
	version   = "0.0.0-dev"
	gitCommit = ""
)

// GetVersion returns the build version normalized to semver without a leading "v".
// A version that does not parse is returned unchanged.
func GetVersion() string {
	v, err := Parse(version)
	if err != nil {
		return version
	}
	return v.String()
}

// GetGitCommit returns the commit the binary was built from, or "".
func GetGitCommit() string {
	return gitCommit
}

// Full returns the version followed by the commit, e.g. "1.2.3 (abc1234)".
func Full() string {
	if gitCommit == "" {
		return GetVersion()
	}
	return GetVersion() + " (" + gitCommit + ")"
}

// Parse parses v as a semantic version, accepting a leading "v" and short forms like "1.2".
func Parse(v string) (*semver.Version, error) {
	return semver.NewVersion(v)
}

// IsDevelopment reports whether the build version is a prerelease.
func IsDevelopment() bool {
	v, err := Parse(version)
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}

// AtLeast reports whether the build version satisfies ">= minimum".
func AtLeast(minimum string) (bool, error) {
	constraint, err := semver.NewConstraint(">= " + minimum)
	if err != nil {
		return false, err
	}
	v, err := Parse(version)
	if err != nil {
		return false, err
	}
	return constraint.Check(v), nil
}
