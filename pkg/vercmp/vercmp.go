// Package vercmp turns arbitrary version strings into fixed-width numeric
// keys so that plain string comparison yields correct numeric ordering
// ("2.0" sorts before "11.0"). Normalization never fails: malformed input
// degrades to zero segments instead of returning an error.
package vercmp

import (
	"strconv"
	"strings"
)

const (
	segmentCount = 3
	segmentWidth = 3
	segmentMax   = 999
)

// ZeroKey is the normalized form of an empty or unparseable version.
const ZeroKey = "000000000"

// Normalize converts a raw version string into a 9-character digit key,
// three dot-separated segments padded to three digits each. Non-digit
// characters inside a segment are stripped ("1.0-SNAPSHOT" == "1.0"),
// missing segments default to zero and segments past the third are ignored.
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ZeroKey
	}

	var key strings.Builder
	key.Grow(segmentCount * segmentWidth)

	segments := strings.Split(version, ".")
	for i := 0; i < segmentCount; i++ {
		n := 0
		if i < len(segments) {
			n = segmentValue(segments[i])
		}
		key.WriteString(pad(n))
	}
	return key.String()
}

// segmentValue strips non-digit characters and parses what remains.
// Anything unparseable counts as zero.
func segmentValue(segment string) int {
	var digits strings.Builder
	for _, r := range segment {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	if n > segmentMax {
		// Clamp to preserve the fixed key width.
		return segmentMax
	}
	return n
}

func pad(n int) string {
	s := strconv.Itoa(n)
	for len(s) < segmentWidth {
		s = "0" + s
	}
	return s
}

// Compare returns -1, 0 or 1 ordering a against b by their normalized keys.
func Compare(a, b string) int {
	return strings.Compare(Normalize(a), Normalize(b))
}

// IsNewerThan reports whether a is strictly newer than b.
func IsNewerThan(a, b string) bool { return Compare(a, b) > 0 }

// IsOlderThan reports whether a is strictly older than b.
func IsOlderThan(a, b string) bool { return Compare(a, b) < 0 }

// IsAtLeast reports whether a is the same as or newer than b.
func IsAtLeast(a, b string) bool { return Compare(a, b) >= 0 }

// IsAtMost reports whether a is the same as or older than b.
func IsAtMost(a, b string) bool { return Compare(a, b) <= 0 }

// IsExactly reports whether a and b normalize to the same key.
func IsExactly(a, b string) bool { return Compare(a, b) == 0 }

// Major extracts the major version integer from a raw version string,
// using the same digit-stripping rules as Normalize. "11.2-beta" yields 11.
func Major(version string) int {
	version = strings.TrimSpace(version)
	if version == "" {
		return 0
	}
	first, _, _ := strings.Cut(version, ".")
	return segmentValue(first)
}
