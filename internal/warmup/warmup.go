// Package warmup exercises metrics once before a long-running process serves
// requests, so lazily built encoders and pools are ready.
package warmup

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/mesi/internal/ports"
)

// Config defines configuration for warming up the system
type Config struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per metric
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultConfig returns the default warmup configuration. The quadratic
// metrics keep the sample small.
func DefaultConfig() Config {
	return Config{
		Concurrency:    runtime.NumCPU(),
		Iterations:     3,
		SampleTextSize: 200,
		Duration:       5 * time.Second,
		ForceGC:        true,
	}
}

type namedMetric struct {
	name     string
	distance ports.DistanceFunc
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	metrics     []namedMetric
	normalizers []ports.Normalizer
	config      Config
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config Config) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterMetric adds a distance function to be warmed up
func (wm *Manager) RegisterMetric(name string, distance ports.DistanceFunc) {
	wm.metrics = append(wm.metrics, namedMetric{name: name, distance: distance})
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs every registered component on sample texts and returns the
// number of metric evaluations performed. Metric errors are logged and ignored.
func (wm *Manager) WarmUp(ctx context.Context) int {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.metrics)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	original := generateSampleText(wm.config.SampleTextSize)
	for _, n := range wm.normalizers {
		_ = n.Normalize(original)
	}
	evaluations := wm.warmUpMetrics(warmupCtx, original)

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"evaluations", evaluations,
		"duration", time.Since(startTime),
	)
	return evaluations
}

func (wm *Manager) warmUpMetrics(ctx context.Context, original string) int {
	if len(wm.metrics) == 0 {
		return 0
	}
	similar := generateSimilarText(original, 0.1)   // 10% difference
	different := generateSimilarText(original, 0.5) // 50% difference

	counts := make([]int, len(wm.metrics))
	g := new(errgroup.Group)
	g.SetLimit(wm.config.Concurrency)
	for i, m := range wm.metrics {
		g.Go(func() error {
			for j := 0; j < wm.config.Iterations; j++ {
				if ctx.Err() != nil {
					return nil
				}
				// Alternate between different similarity levels
				var err error
				switch j % 3 {
				case 0:
					_, err = m.distance(original, original)
				case 1:
					_, err = m.distance(original, similar)
				default:
					_, err = m.distance(original, different)
				}
				if err != nil {
					wm.logger.Debug("Warmup evaluation failed", "metric", m.name, "error", err)
				}
				counts[i]++
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}

// generateSampleText creates sample text of the specified size
func generateSampleText(size int) string {
	words := []string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor", "incididunt",
		"ut", "labore", "et", "dolore", "magna", "aliqua",
	}

	var sb strings.Builder
	for i := 0; sb.Len() < size; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(words[i%len(words)])
	}

	result := sb.String()
	if len(result) > size {
		return result[:size]
	}
	return result
}

// generateSimilarText replaces the leading diffRatio share of words.
func generateSimilarText(original string, diffRatio float64) string {
	words := strings.Fields(original)
	changeCount := int(float64(len(words)) * diffRatio)

	replacements := []string{
		"replaced", "modified", "changed", "altered", "updated",
		"different", "unique", "new", "fresh", "novel",
	}

	for i := 0; i < changeCount && i < len(words); i++ {
		words[i] = replacements[i%len(replacements)]
	}
	return strings.Join(words, " ")
}
