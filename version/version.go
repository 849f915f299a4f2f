// Package version parses and compares release versions and checks the
// local build against the latest published release.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Current is the version compiled into this build. Override with
// -ldflags "-X github.com/akorn123w/FishingInTheVoid/version.Current=1.2.3".
var Current = "0.0.0-pre-release"

var ErrInvalid = errors.New("invalid version")

// Version is a numeric triple with optional metadata after the first dash.
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Patch int    `json:"patch"`
	Meta  string `json:"meta"`
}

// Parse decodes "major.minor.patch[-meta]". Everything after the first dash is meta.
func Parse(s string) (Version, error) {
	var v Version
	core := s
	if i := strings.IndexByte(s, '-'); i >= 0 {
		core, v.Meta = s[:i], s[i+1:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	nums := [3]*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalid, s)
		}
		*nums[i] = n
	}
	return v, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Meta != "" {
		s += "-" + v.Meta
	}
	return s
}

// Compare returns -1, 0 or 1. Numeric parts are compared first. With equal
// numbers a release without meta ranks above one with meta, and two metas
// compare lexically.
func Compare(a, b Version) int {
	for _, d := range [...]int{a.Major - b.Major, a.Minor - b.Minor, a.Patch - b.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	switch {
	case a.Meta == b.Meta:
		return 0
	case a.Meta == "":
		return 1
	case b.Meta == "":
		return -1
	}
	return strings.Compare(a.Meta, b.Meta)
}

// IsOutdated reports whether local is older than latest.
func IsOutdated(local, latest Version) bool {
	return Compare(local, latest) < 0
}
