package warmup

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/normalizer"
	"github.com/baditaflorin/mesi/internal/core/metric"
)

func TestWarmUpRunsEveryMetric(t *testing.T) {
	wm := NewManager(logger.NewNopLogger(), Config{Concurrency: 4, Iterations: 3, SampleTextSize: 100})

	for _, name := range []string{"levenshtein", "zstd", "jaro-winkler"} {
		fn, err := metric.Default().Resolve(name)
		assert.NoError(t, err)
		wm.RegisterMetric(name, fn)
	}
	var calls atomic.Int64
	wm.RegisterMetric("failing", func(a, b string) (float64, error) {
		calls.Add(1)
		return 0, errors.New("boom")
	})
	wm.RegisterNormalizer(normalizer.NewWhitespaceNormalizer())

	assert.Equal(t, 12, wm.WarmUp(context.Background()))
	assert.Equal(t, int64(3), calls.Load())
}

func TestWarmUpStopsWhenCanceled(t *testing.T) {
	wm := NewManager(logger.NewNopLogger(), Config{Concurrency: 1, Iterations: 100, SampleTextSize: 50, Duration: time.Second})
	wm.RegisterMetric("identity", func(a, b string) (float64, error) { return 0, nil })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Zero(t, wm.WarmUp(ctx))
}

func TestWarmUpWithoutMetrics(t *testing.T) {
	wm := NewManager(logger.NewNopLogger(), DefaultConfig())
	assert.Zero(t, wm.WarmUp(context.Background()))
}

func TestSampleTexts(t *testing.T) {
	original := generateSampleText(120)
	assert.Len(t, original, 120)

	similar := generateSimilarText(original, 0.5)
	words := strings.Fields(original)
	changed := strings.Fields(similar)
	assert.Len(t, changed, len(words))
	assert.Equal(t, "replaced", changed[0])
	assert.Equal(t, words[len(words)-1], changed[len(changed)-1])
}
