package table

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/mesi/internal/core/domain"
)

func sampleRows() []domain.Result {
	return []domain.Result{
		{Pair: domain.FilePair{First: "test-1/hello.txt", Second: "test-2/hello.txt"}, Distance: 5},
		{Pair: domain.FilePair{First: "test-1/json.txt", Second: "test-1/jqsn.txt"}, Distance: 0.5},
	}
}

func TestRenderDistinctPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRows(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "Distinct Path")
	assert.Contains(t, out, "Distance")
	assert.Contains(t, out, "test-1")
	assert.Contains(t, out, "jqsn.txt")
	assert.NotContains(t, out, "test-1/hello.txt")
	assert.Contains(t, out, "0.5")
	assert.NotContains(t, out, "Average distance")
}

func TestRenderFullPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRows(), Options{Format: "plain", FullPaths: true}))

	out := buf.String()
	assert.Contains(t, out, "Path")
	assert.NotContains(t, out, "Distinct Path")
	assert.Contains(t, out, "test-1/hello.txt")
	assert.Contains(t, out, "test-2/hello.txt")
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRows(), Options{Format: "simple", Stats: true}))
	assert.Contains(t, buf.String(), "> Average distance: 2.75")
}

func TestRenderEveryFormat(t *testing.T) {
	for _, name := range Formats() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, sampleRows(), Options{Format: name}))
			out := buf.String()
			assert.Contains(t, out, "Distance")
			assert.Contains(t, out, "test-2")
		})
	}
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleRows()[:1], Options{Format: "csv"}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Distinct Path,Distinct Path,Distance", lines[0])
	assert.Equal(t, "test-1,test-2,5", lines[1])
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleRows(), Options{Format: "latex"})
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Empty(t, buf.String())
}

func TestFormats(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"pipe", "markdown", "plain", "simple", "grid", "rounded", "double", "csv", "tsv", "html"},
		Formats())
	assert.NoError(t, ValidateFormat("grid"))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "5", FormatDistance(5))
	assert.Equal(t, "0.125", FormatDistance(0.125))
	assert.Equal(t, "inf", FormatDistance(math.Inf(1)))
}

func TestRenderAlgorithms(t *testing.T) {
	var buf bytes.Buffer
	rows := []AlgorithmRow{
		{Name: "jaccard", Family: "token", Bounded: true},
		{Name: "levenshtein", Family: "edit"},
	}
	require.NoError(t, RenderAlgorithms(&buf, rows, "csv"))
	assert.Equal(t, "Algorithm,Family,Range\njaccard,token,\"[0\\, 1]\"\nlevenshtein,edit,unbounded\n", buf.String())

	assert.ErrorIs(t, RenderAlgorithms(&buf, rows, "yaml"), ErrUnknownFormat)
}
