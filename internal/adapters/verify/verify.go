// Package verify checks the command-line paths before any comparison runs.
package verify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/core/pairs"
)

// ErrTooFewAfterIgnoring marks an InsufficientInput failure caused by
// dropping invalid paths.
var ErrTooFewAfterIgnoring = errors.New("too few valid files after ignoring invalid paths")

// Report splits the requested paths into usable files and rejected ones.
type Report struct {
	Valid   []string
	Invalid []string
}

// Split keeps paths that name an existing regular file, in input order.
// Repeated paths are kept once.
func Split(paths []string) Report {
	var report Report
	for _, path := range pairs.Unique(paths) {
		if isRegularFile(path) {
			report.Valid = append(report.Valid, path)
		} else {
			report.Invalid = append(report.Invalid, path)
		}
	}
	return report
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Files validates paths and returns the files to compare. Invalid paths are
// an error unless ignoreInvalid is set, in which case they are dropped.
func Files(paths []string, ignoreInvalid bool) ([]string, error) {
	report := Split(paths)

	if len(report.Invalid) > 0 {
		if !ignoreInvalid {
			return nil, fmt.Errorf("%w: the following paths are not valid files: %s",
				domain.ErrInvalidInput, strings.Join(report.Invalid, ", "))
		}
		if len(report.Valid) < 2 {
			return nil, fmt.Errorf("%w: %w: %d valid file(s) left, %d invalid path(s) ignored",
				domain.ErrInsufficientInput, ErrTooFewAfterIgnoring, len(report.Valid), len(report.Invalid))
		}
		return report.Valid, nil
	}

	if len(report.Valid) < 2 {
		return nil, fmt.Errorf("%w: at least two files are needed for a comparison, got %d",
			domain.ErrInsufficientInput, len(report.Valid))
	}
	return report.Valid, nil
}

// Comparable reports whether enough distinct files remain to form a pair.
func Comparable(files []string) bool {
	return len(pairs.Unique(files)) >= 2
}
