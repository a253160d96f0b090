// Package version implements the lenient version parsing and constraint
// matching used to decide whether an installed tool satisfies a formula.
//
// The matcher is a pragmatic approximation of npm-style ranges: versions are
// numeric triples, pre-release and build metadata are not considered, and a
// constraint that cannot be understood simply fails to match.
package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed numeric version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse decomposes a version string into a numeric triple. A leading "v" is
// stripped, up to three dot-separated groups are read, and missing trailing
// groups default to zero. Each group's value is its leading digit run, so
// trailing text inside a group is ignored ("1.2.3-beta" parses as 1.2.3, as
// does "2.41.0.windows.1" via the three-group cutoff). A group with no
// leading digit makes parsing fail.
func Parse(s string) (Version, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, false
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	var nums [3]int
	for i, p := range parts {
		n, ok := parseSegment(p)
		if !ok {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// parseSegment reads the leading digit run of a segment.
func parseSegment(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 comparing component by component.
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// Compare compares two version strings numerically.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func Compare(a, b string) (int, error) {
	va, ok := Parse(a)
	if !ok {
		return 0, fmt.Errorf("invalid version: %q", a)
	}
	vb, ok := Parse(b)
	if !ok {
		return 0, fmt.Errorf("invalid version: %q", b)
	}
	return va.Compare(vb), nil
}

// Bump increments the specified part of a version string and zeroes
// everything after it. Supported parts are "major", "minor", and "patch".
func Bump(current, part string) (string, error) {
	v, ok := Parse(current)
	if !ok {
		return "", fmt.Errorf("invalid version: %q", current)
	}
	switch part {
	case "major":
		v.Major++
		v.Minor = 0
		v.Patch = 0
	case "minor":
		v.Minor++
		v.Patch = 0
	case "patch":
		v.Patch++
	default:
		return "", fmt.Errorf("unknown version part: %q (use major, minor, or patch)", part)
	}
	return v.String(), nil
}
