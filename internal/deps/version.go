package deps

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// ParseVersion extracts the first dotted version number from a version
// banner such as "Python 3.11.4" or "ffmpeg version 6.1.1-full_build".
func ParseVersion(banner string) (*semver.Version, error) {
	match := versionPattern.FindString(banner)
	if match == "" {
		return nil, fmt.Errorf("no version number in %q", strings.TrimSpace(banner))
	}
	return semver.NewVersion(match)
}

// MeetsMinimum reports whether the version found in banner is at least min.
// An empty min always passes.
func MeetsMinimum(banner, min string) (bool, *semver.Version, error) {
	v, err := ParseVersion(banner)
	if err != nil {
		return false, nil, err
	}
	if strings.TrimSpace(min) == "" {
		return true, v, nil
	}
	minVer, err := parseSemver(min)
	if err != nil {
		return false, v, fmt.Errorf("parsing minimum version %q: %w", min, err)
	}
	return !v.LessThan(minVer), v, nil
}

func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
