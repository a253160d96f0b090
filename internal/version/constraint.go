package version

import (
	"strconv"
	"strings"
)

// comparisonOps lists the supported comparison prefixes. Two-character
// operators come first so ">=" is not read as ">" followed by "=1.2.3".
var comparisonOps = []struct {
	prefix string
	holds  func(c int) bool
}{
	{">=", func(c int) bool { return c >= 0 }},
	{"<=", func(c int) bool { return c <= 0 }},
	{">", func(c int) bool { return c > 0 }},
	{"<", func(c int) bool { return c < 0 }},
	{"=", func(c int) bool { return c == 0 }},
}

// Satisfies reports whether a version matches a constraint. Rules are tried
// in a fixed order and the first one whose shape the constraint matches
// decides the outcome; if the rule then fails to parse its operands the
// constraint does not match.
//
//	""/"latest"/"*"/"x"  always match
//	^X                   same major, at or above X
//	~X                   same major and minor, patch at or above X
//	>= <= > < =          numeric comparison against the operand
//	1.2.x, 1.*           wildcard segments match anything from there on
//	A - B                inclusive range
//	A || B               any alternative matches
//	A B                  every part matches
//	X                    exact triple equality
func Satisfies(version, constraint string) bool {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || constraint == "latest" || constraint == "*" || constraint == "x" {
		return true
	}

	v, ok := Parse(version)
	if !ok {
		return false
	}

	if rest, found := strings.CutPrefix(constraint, "^"); found {
		c, ok := Parse(rest)
		return ok && v.Major == c.Major && v.Compare(c) >= 0
	}

	if rest, found := strings.CutPrefix(constraint, "~"); found {
		c, ok := Parse(rest)
		return ok && v.Major == c.Major && v.Minor == c.Minor && v.Patch >= c.Patch
	}

	for _, op := range comparisonOps {
		if rest, found := strings.CutPrefix(constraint, op.prefix); found {
			c, ok := Parse(rest)
			return ok && op.holds(v.Compare(c))
		}
	}

	if segments, found := wildcardSegments(constraint); found {
		return matchWildcard(v, segments)
	}

	if lo, hi, found := strings.Cut(constraint, " - "); found {
		cLo, okLo := Parse(lo)
		cHi, okHi := Parse(hi)
		return okLo && okHi && v.Compare(cLo) >= 0 && v.Compare(cHi) <= 0
	}

	if strings.Contains(constraint, "||") {
		for _, alt := range strings.Split(constraint, "||") {
			if Satisfies(version, alt) {
				return true
			}
		}
		return false
	}

	if fields := strings.Fields(constraint); len(fields) > 1 {
		for _, f := range fields {
			if !Satisfies(version, f) {
				return false
			}
		}
		return true
	}

	c, ok := Parse(constraint)
	return ok && v.Compare(c) == 0
}

// wildcardSegments reports whether the constraint contains an "x" or "*"
// segment, returning its dot-separated segments when it does.
func wildcardSegments(constraint string) ([]string, bool) {
	segments := strings.Split(constraint, ".")
	for _, s := range segments {
		if isWildcardSegment(s) {
			return segments, true
		}
	}
	return nil, false
}

func isWildcardSegment(s string) bool {
	return s == "x" || s == "*"
}

// matchWildcard compares concrete segments against the version components in
// order. The first wildcard segment matches everything from its position on.
func matchWildcard(v Version, segments []string) bool {
	parts := [3]int{v.Major, v.Minor, v.Patch}
	for i, seg := range segments {
		if isWildcardSegment(seg) {
			return true
		}
		if i >= len(parts) {
			return false
		}
		n, err := strconv.Atoi(seg)
		if err != nil || n != parts[i] {
			return false
		}
	}
	return true
}
