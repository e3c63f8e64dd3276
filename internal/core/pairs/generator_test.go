package pairs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

func TestGenerateOrder(t *testing.T) {
	got := Generate([]string{"a", "b", "c", "d"})
	want := []domain.FilePair{
		{First: "a", Second: "b"},
		{First: "a", Second: "c"},
		{First: "a", Second: "d"},
		{First: "b", Second: "c"},
		{First: "b", Second: "d"},
		{First: "c", Second: "d"},
	}
	assert.Equal(t, want, got)
}

func TestGenerateCount(t *testing.T) {
	for n := 0; n <= 12; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			files := make([]string, n)
			for i := range files {
				files[i] = fmt.Sprintf("file-%02d.txt", i)
			}
			got := Generate(files)
			assert.Len(t, got, Count(n))
			seen := make(map[domain.FilePair]bool)
			for _, p := range got {
				assert.NotEqual(t, p.First, p.Second)
				assert.False(t, seen[p], "pair %v repeated", p)
				seen[p] = true
			}
		})
	}
}

func TestGenerateKeepsInputOrder(t *testing.T) {
	got := Generate([]string{"z.txt", "a.txt"})
	assert.Equal(t, []domain.FilePair{{First: "z.txt", Second: "a.txt"}}, got)
}

func TestGenerateSkipsRepeatedFiles(t *testing.T) {
	got := Generate([]string{"a", "a", "b", "a"})
	assert.Equal(t, []domain.FilePair{{First: "a", Second: "b"}}, got)

	assert.Empty(t, Generate([]string{"a", "a"}))
	assert.Empty(t, Generate(nil))
}
