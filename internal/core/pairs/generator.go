// Package pairs generates the file pairs to compare.
package pairs

import "github.com/baditaflorin/mesi/internal/core/domain"

// Count returns the number of pairs Generate produces for n distinct files.
func Count(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// Generate returns all 2-combinations of files in standard combinatorial
// order: for [a b c] it yields (a,b) (a,c) (b,c). Repeated entries are
// dropped first, so no file is ever compared with itself.
func Generate(files []string) []domain.FilePair {
	files = Unique(files)
	out := make([]domain.FilePair, 0, Count(len(files)))
	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			out = append(out, domain.FilePair{First: files[i], Second: files[j]})
		}
	}
	return out
}

// Unique returns files without repeated entries, keeping first occurrences.
func Unique(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
