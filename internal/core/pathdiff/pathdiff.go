// Package pathdiff shortens a pair of paths to the segments that tell them
// apart.
package pathdiff

import (
	"os"
	"strings"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

// Diff strips the common leading and trailing path segments of the pair,
// using the platform path separator.
func Diff(pair domain.FilePair) (string, string) {
	return DiffSep(pair, os.PathSeparator)
}

// DiffSep strips the longest common prefix and suffix of both paths, cutting
// only at sep so that no segment is split. When the remaining part of either
// path would be empty, or no cut is possible, both paths are returned whole.
func DiffSep(pair domain.FilePair, sep rune) (string, string) {
	first, second := pair.First, pair.Second
	s := string(sep)

	prefix := commonPrefix(first, second)
	suffix := commonSuffix(first, second)

	// Cut after the last separator of the prefix; -1 keeps everything.
	start := strings.LastIndex(prefix, s) + 1

	// Cut at the first separator of the suffix, counted from the end.
	trim := 0
	if i := strings.Index(suffix, s); i >= 0 {
		trim = len(suffix) - i
	}

	if start == 0 && trim == 0 {
		return first, second
	}
	endFirst, endSecond := len(first)-trim, len(second)-trim
	if start >= endFirst || start >= endSecond {
		return first, second
	}
	return first[start:endFirst], second[start:endSecond]
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}
