// Package mesi compares the contents of files pairwise with a selectable
// string distance metric.
package mesi

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/mesi/internal/adapters/loader"
	"github.com/baditaflorin/mesi/internal/adapters/logger"
	"github.com/baditaflorin/mesi/internal/adapters/normalizer"
	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/core/engine"
	"github.com/baditaflorin/mesi/internal/core/metric"
	"github.com/baditaflorin/mesi/internal/core/pairs"
	"github.com/baditaflorin/mesi/internal/core/selector"
	"github.com/baditaflorin/mesi/internal/ports"
)

// Errors returned by Compare and Distance, matched with errors.Is.
var (
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrInsufficientInput  = domain.ErrInsufficientInput
	ErrUnknownMetric      = domain.ErrUnknownMetric
	ErrIOFailure          = domain.ErrIOFailure
	ErrMetricPrecondition = domain.ErrMetricPrecondition
)

// DefaultAlgorithm is the metric used when none is chosen.
const DefaultAlgorithm = metric.DefaultAlgorithm

// Result is the distance between the contents of two files.
type Result struct {
	First    string
	Second   string
	Distance float64
}

// Report is the outcome of comparing a set of files.
type Report struct {
	Algorithm string
	// Results holds every pair in generation order.
	Results []Result
	// Selected holds the pairs within the threshold, largest distance first.
	// When none is within the threshold it holds every pair and UsedFallback is set.
	Selected       []Result
	UsedFallback   bool
	ProcessingTime time.Duration
}

// Average returns the mean distance of the selected pairs, NaN when there are none.
func (r Report) Average() float64 {
	if len(r.Selected) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, res := range r.Selected {
		sum += res.Distance
	}
	return sum / float64(len(r.Selected))
}

// Algorithm describes a registered metric.
type Algorithm struct {
	Name    string `json:"name"`
	Family  string `json:"family"`
	Bounded bool   `json:"bounded"`
}

// Algorithms lists every registered metric, sorted by name.
func Algorithms() []Algorithm {
	metrics := metric.Default().Metrics()
	out := make([]Algorithm, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, Algorithm{Name: m.Name, Family: string(m.Family), Bounded: m.Bounded})
	}
	return out
}

// Option defines a functional option for configuring a Comparer.
type Option func(*comparerConfig)

type comparerConfig struct {
	Algorithm        string
	Threshold        float64
	IgnoreWhitespace bool
	Workers          int
	CacheSize        int
	Metric           metric.Config
	Logger           ports.Logger
	Progress         ports.ProgressReporter
	Recorder         ports.Recorder
}

// WithAlgorithm selects the distance metric by name.
func WithAlgorithm(name string) Option {
	return func(cfg *comparerConfig) {
		cfg.Algorithm = name
	}
}

// WithThreshold sets the inclusive upper bound on selected distances.
func WithThreshold(th float64) Option {
	return func(cfg *comparerConfig) {
		cfg.Threshold = th
	}
}

// WithIgnoreWhitespace strips all whitespace before comparing.
func WithIgnoreWhitespace(ignore bool) Option {
	return func(cfg *comparerConfig) {
		cfg.IgnoreWhitespace = ignore
	}
}

// WithWorkers sets how many pairs are compared concurrently.
func WithWorkers(n int) Option {
	return func(cfg *comparerConfig) {
		cfg.Workers = n
	}
}

// WithCacheSize keeps up to n file contents in memory during a run.
func WithCacheSize(n int) Option {
	return func(cfg *comparerConfig) {
		cfg.CacheSize = n
	}
}

// WithGapCosts sets the linear gap cost of needleman-wunsch and
// smith-waterman and the affine gap costs of gotoh.
func WithGapCosts(gap, open, extend float64) Option {
	return func(cfg *comparerConfig) {
		cfg.Metric.GapCost = gap
		cfg.Metric.GapOpen = open
		cfg.Metric.GapExtend = extend
	}
}

// WithPrefixWeight sets the jaro-winkler prefix scale.
func WithPrefixWeight(w float64) Option {
	return func(cfg *comparerConfig) {
		cfg.Metric.PrefixWeight = w
	}
}

// WithTverskyWeights sets the tversky alpha and beta weights.
func WithTverskyWeights(alpha, beta float64) Option {
	return func(cfg *comparerConfig) {
		cfg.Metric.TverskyAlpha = alpha
		cfg.Metric.TverskyBeta = beta
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) Option {
	return func(cfg *comparerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger that already implements the internal interface.
func WithPortsLogger(lg ports.Logger) Option {
	return func(cfg *comparerConfig) {
		cfg.Logger = lg
	}
}

// WithProgress reports every compared pair to p.
func WithProgress(p ports.ProgressReporter) Option {
	return func(cfg *comparerConfig) {
		cfg.Progress = p
	}
}

// WithRecorder records run measurements in r.
func WithRecorder(r ports.Recorder) Option {
	return func(cfg *comparerConfig) {
		cfg.Recorder = r
	}
}

// Comparer compares files and strings with one configured metric.
type Comparer struct {
	algorithm        string
	threshold        float64
	ignoreWhitespace bool
	resolver         ports.MetricResolver
	normalizer       ports.Normalizer
	engine           *engine.Engine
	logger           ports.Logger
}

// New creates a Comparer.
func New(opts ...Option) (*Comparer, error) {
	config := &comparerConfig{
		Algorithm: DefaultAlgorithm,
		Threshold: math.Inf(1),
		Workers:   1,
		Metric:    metric.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(config)
	}

	if err := config.Metric.Validate(); err != nil {
		return nil, err
	}

	if config.Logger == nil {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	loaderConfig := loader.DefaultConfig()
	loaderConfig.CacheSize = config.CacheSize
	fileLoader, err := loader.New(loaderConfig, config.Logger)
	if err != nil {
		return nil, err
	}

	resolver := metric.Default().Bind(config.Metric)
	norm := normalizer.NewNormalizerFactory().CreateNormalizer(normalizer.WhitespaceNormalizerType)

	var engineOpts []engine.Option
	if config.Progress != nil {
		engineOpts = append(engineOpts, engine.WithProgress(config.Progress))
	}
	if config.Recorder != nil {
		engineOpts = append(engineOpts, engine.WithRecorder(config.Recorder))
	}
	eng, err := engine.New(engine.Config{Workers: config.Workers}, resolver, fileLoader, norm, config.Logger, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Comparer{
		algorithm:        config.Algorithm,
		threshold:        config.Threshold,
		ignoreWhitespace: config.IgnoreWhitespace,
		resolver:         resolver,
		normalizer:       norm,
		engine:           eng,
		logger:           config.Logger,
	}, nil
}

// Compare measures every pair of distinct files and selects those within
// the threshold. Files must exist; at least two distinct files are needed.
func (c *Comparer) Compare(ctx context.Context, files []string) (*Report, error) {
	start := time.Now()

	unique := pairs.Unique(files)
	if len(unique) < 2 {
		return nil, fmt.Errorf("%w: at least two distinct files are needed, got %d", ErrInsufficientInput, len(unique))
	}

	resultSet, err := c.engine.Compute(ctx, pairs.Generate(unique), c.algorithm, c.ignoreWhitespace)
	if err != nil {
		return nil, err
	}
	selected, fallback := selector.Select(resultSet, c.threshold)

	report := &Report{
		Algorithm:      c.algorithm,
		Results:        convert(resultSet.Results()),
		Selected:       convert(selected),
		UsedFallback:   fallback,
		ProcessingTime: time.Since(start),
	}
	c.logger.Info("Compared files",
		"algorithm", c.algorithm,
		"files", len(unique),
		"pairs", len(report.Results),
		"selected", len(report.Selected),
		"fallback", fallback,
		"processing_time", report.ProcessingTime,
	)
	return report, nil
}

// Distance measures two texts directly with the configured metric.
func (c *Comparer) Distance(first, second string) (float64, error) {
	return c.DistanceWith(c.algorithm, first, second, c.ignoreWhitespace)
}

// DistanceWith measures two texts with the named metric instead of the configured one.
func (c *Comparer) DistanceWith(algorithm, first, second string, ignoreWhitespace bool) (float64, error) {
	distance, err := c.resolver.Resolve(algorithm)
	if err != nil {
		return 0, err
	}
	if ignoreWhitespace {
		first = c.normalizer.Normalize(first)
		second = c.normalizer.Normalize(second)
	}
	return distance(first, second)
}

func convert(results []domain.Result) []Result {
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{First: r.Pair.First, Second: r.Pair.Second, Distance: r.Distance}
	}
	return out
}
