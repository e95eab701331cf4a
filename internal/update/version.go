package update

import (
	"strconv"
	"strings"
)

// Comparison is the result of comparing the installed version against a
// release target.
type Comparison int

const (
	// UpToDate means the installed version already matches the target.
	UpToDate Comparison = iota
	// NeedsUpdate means the target is newer than the installed version.
	NeedsUpdate
	// Downgrade means the target is older than the installed version.
	Downgrade
)

// String returns a human-readable name for the comparison result.
func (c Comparison) String() string {
	switch c {
	case NeedsUpdate:
		return "needs update"
	case Downgrade:
		return "downgrade"
	default:
		return "up to date"
	}
}

// Compare compares two dotted version strings segment by segment. The
// shorter version is zero-padded, so "1.2" equals "1.2.0". Segments that do
// not parse as unsigned integers count as 0; comparison never fails.
func Compare(current, target string) Comparison {
	cur := parseSegments(current)
	tgt := parseSegments(target)

	for len(cur) < len(tgt) {
		cur = append(cur, 0)
	}
	for len(tgt) < len(cur) {
		tgt = append(tgt, 0)
	}

	for i := range cur {
		if cur[i] < tgt[i] {
			return NeedsUpdate
		}
		if cur[i] > tgt[i] {
			return Downgrade
		}
	}
	return UpToDate
}

func parseSegments(version string) []uint64 {
	parts := strings.Split(version, ".")
	segs := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			n = 0
		}
		segs[i] = n
	}
	return segs
}

// Normalize strips a leading "v" from a version string.
func Normalize(version string) string {
	return strings.TrimPrefix(version, "v")
}
