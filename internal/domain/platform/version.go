package platform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned for version strings that are not MAJOR[.MINOR].
var ErrInvalidVersion = errors.New("invalid platform version")

// Version is a numeric MAJOR.MINOR release version.
// "20.10" is newer than "20.4": components compare as integers.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses "22.04", "24.10" or "22". Components beyond minor are ignored.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || parts[0] == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	minor := 0
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil || minor < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
	}

	return Version{Major: major, Minor: minor}, nil
}

// MustParseVersion parses s, panicking on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// canonical renders the version for semver comparison.
func (v Version) canonical() string {
	return fmt.Sprintf("v%d.%d.0", v.Major, v.Minor)
}

// Compare returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.canonical(), other.canonical())
}

// AtLeast reports whether v >= minimum.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}

// String renders the version Ubuntu-style with a zero-padded minor.
func (v Version) String() string {
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}
