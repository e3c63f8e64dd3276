package mesi

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/telemetry"
)

func writeFiles(t *testing.T, contents map[string]string) map[string]string {
	t.Helper()
	dir := t.TempDir()
	paths := make(map[string]string, len(contents))
	for name, content := range contents {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths[name] = path
	}
	return paths
}

func quiet() Option {
	return WithPortsLogger(logger.NewNopLogger())
}

func TestCompareLevenshtein(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"test-1/hello.txt": "hello from test-1",
		"test-2/hello.txt": "hi from test-2",
	})
	c, err := New(quiet())
	require.NoError(t, err)

	report, err := c.Compare(context.Background(), []string{paths["test-1/hello.txt"], paths["test-2/hello.txt"]})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, 5.0, report.Results[0].Distance)
	assert.Equal(t, report.Results, report.Selected)
	assert.False(t, report.UsedFallback)
	assert.Equal(t, "levenshtein", report.Algorithm)
	assert.Equal(t, 5.0, report.Average())
}

func TestCompareThresholdAndFallback(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.txt": "this is a test",
		"b.txt": "this is a test",
		"c.txt": "this is a toast",
	})
	files := []string{paths["a.txt"], paths["b.txt"], paths["c.txt"]}

	c, err := New(quiet(), WithThreshold(0))
	require.NoError(t, err)
	report, err := c.Compare(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.Len(t, report.Selected, 1)
	assert.Equal(t, paths["a.txt"], report.Selected[0].First)
	assert.Equal(t, 0.0, report.Selected[0].Distance)
	assert.False(t, report.UsedFallback)

	c, err = New(quiet(), WithThreshold(-1))
	require.NoError(t, err)
	report, err = c.Compare(context.Background(), files)
	require.NoError(t, err)
	assert.True(t, report.UsedFallback)
	require.Len(t, report.Selected, 3)
	assert.GreaterOrEqual(t, report.Selected[0].Distance, report.Selected[2].Distance)
}

func TestCompareIgnoreWhitespaceInParallel(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"a.txt": "this is a test",
		"b.txt": "this\nis\ta  test\n",
		"c.txt": "thisisatest",
	})
	rec := telemetry.NewRecorder()
	c, err := New(quiet(), WithIgnoreWhitespace(true), WithWorkers(3), WithCacheSize(8), WithRecorder(rec))
	require.NoError(t, err)

	report, err := c.Compare(context.Background(), []string{paths["a.txt"], paths["b.txt"], paths["c.txt"]})
	require.NoError(t, err)
	for _, r := range report.Results {
		assert.Equal(t, 0.0, r.Distance)
	}
}

func TestCompareErrors(t *testing.T) {
	paths := writeFiles(t, map[string]string{"a.txt": "ab", "b.txt": "abc"})
	files := []string{paths["a.txt"], paths["b.txt"]}

	c, err := New(quiet(), WithAlgorithm("doesnotexist"))
	require.NoError(t, err)
	_, err = c.Compare(context.Background(), files)
	assert.True(t, errors.Is(err, ErrUnknownMetric))

	c, err = New(quiet(), WithAlgorithm("hamming"))
	require.NoError(t, err)
	_, err = c.Compare(context.Background(), files)
	assert.True(t, errors.Is(err, ErrMetricPrecondition))

	c, err = New(quiet())
	require.NoError(t, err)
	_, err = c.Compare(context.Background(), []string{paths["a.txt"], paths["a.txt"]})
	assert.True(t, errors.Is(err, ErrInsufficientInput))

	_, err = c.Compare(context.Background(), []string{paths["a.txt"], filepath.Join(t.TempDir(), "gone")})
	assert.True(t, errors.Is(err, ErrIOFailure))
}

func TestDistance(t *testing.T) {
	c, err := New(quiet())
	require.NoError(t, err)

	d, err := c.Distance("kitten", "sitting")
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	d, err = c.DistanceWith("jaccard", "abc", "abc", false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = c.DistanceWith("levenshtein", "a b", "ab", true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	_, err = c.DistanceWith("nope", "a", "b", false)
	assert.True(t, errors.Is(err, ErrUnknownMetric))
}

func TestGapCostsOption(t *testing.T) {
	c, err := New(quiet(), WithAlgorithm("needleman-wunsch"), WithGapCosts(2, 1, 0.4))
	require.NoError(t, err)
	d, err := c.Distance("abc", "")
	require.NoError(t, err)
	// three gaps at cost 2 score -6
	assert.Equal(t, 9.0, d)

	_, err = New(quiet(), WithGapCosts(-1, 1, 0.4))
	assert.Error(t, err)
}

func TestAlgorithms(t *testing.T) {
	algos := Algorithms()
	require.NotEmpty(t, algos)
	names := make(map[string]Algorithm, len(algos))
	for i, a := range algos {
		if i > 0 {
			assert.Less(t, algos[i-1].Name, a.Name)
		}
		names[a.Name] = a
	}
	assert.Equal(t, "edit", names["levenshtein"].Family)
	assert.True(t, names["jaccard"].Bounded)
}

func TestReportAverageEmpty(t *testing.T) {
	assert.True(t, math.IsNaN(Report{}.Average()))
}
