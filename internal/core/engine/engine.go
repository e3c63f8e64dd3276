// Package engine computes the distance of every file pair.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/mesi/internal/core/domain"
	"github.com/baditaflorin/mesi/internal/ports"
)

// Config holds configuration for the distance engine.
type Config struct {
	// Workers is the number of pairs computed concurrently; 1 is sequential.
	Workers int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{Workers: 1}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	return nil
}

// Engine loads, optionally normalizes and measures each pair.
type Engine struct {
	config     Config
	resolver   ports.MetricResolver
	loader     ports.ContentLoader
	normalizer ports.Normalizer
	logger     ports.Logger
	progress   ports.ProgressReporter
	recorder   ports.Recorder
}

// Option configures optional collaborators of the engine.
type Option func(*Engine)

// WithProgress reports each finished pair to p.
func WithProgress(p ports.ProgressReporter) Option {
	return func(e *Engine) {
		e.progress = p
	}
}

// WithRecorder records run measurements in r.
func WithRecorder(r ports.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates a distance engine. normalizer is applied to both contents when
// Compute is asked to strip whitespace.
func New(config Config, resolver ports.MetricResolver, loader ports.ContentLoader, normalizer ports.Normalizer, logger ports.Logger, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if resolver == nil || loader == nil || normalizer == nil || logger == nil {
		return nil, errors.New("engine needs a resolver, a loader, a normalizer and a logger")
	}
	e := &Engine{
		config:     config,
		resolver:   resolver,
		loader:     loader,
		normalizer: normalizer,
		logger:     logger,
		progress:   nopProgress{},
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Compute resolves metricName once and then measures every pair. It fails
// before reading any file when the metric is unknown, and stops at the first
// pair that cannot be loaded or measured: no partial result is returned.
func (e *Engine) Compute(ctx context.Context, pairs []domain.FilePair, metricName string, stripWhitespace bool) (*domain.ResultSet, error) {
	distance, err := e.resolver.Resolve(metricName)
	if err != nil {
		e.recorder.RunFailed(failureReason(err))
		return nil, err
	}

	e.logger.Debug("Starting distance computation",
		"algorithm", metricName,
		"pairs", len(pairs),
		"strip_whitespace", stripWhitespace,
		"workers", e.config.Workers,
	)

	e.progress.Start(len(pairs))
	defer e.progress.Finish()

	results := make([]domain.Result, len(pairs))
	measure := func(ctx context.Context, i int) error {
		d, err := e.computePair(ctx, distance, metricName, pairs[i], stripWhitespace)
		if err != nil {
			return err
		}
		results[i] = domain.Result{Pair: pairs[i], Distance: d}
		e.progress.Advance()
		return nil
	}

	if e.config.Workers <= 1 {
		for i := range pairs {
			if err := measure(ctx, i); err != nil {
				return nil, e.fail(err)
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.config.Workers)
		for i := range pairs {
			g.Go(func() error {
				return measure(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, e.fail(err)
		}
	}

	e.logger.Debug("Distance computation finished", "algorithm", metricName, "pairs", len(pairs))
	return domain.NewResultSet(results), nil
}

func (e *Engine) computePair(ctx context.Context, distance ports.DistanceFunc, metricName string, pair domain.FilePair, stripWhitespace bool) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	first, second, err := e.loader.Load(ctx, pair)
	if err != nil {
		return 0, err
	}
	e.recorder.BytesLoaded(len(first) + len(second))

	if stripWhitespace {
		first = e.normalizer.Normalize(first)
		second = e.normalizer.Normalize(second)
	}

	start := time.Now()
	d, err := distance(first, second)
	if err != nil {
		return 0, fmt.Errorf("comparing %s and %s: %w", pair.First, pair.Second, err)
	}
	elapsed := time.Since(start)
	e.recorder.PairCompared(metricName, elapsed.Seconds())

	e.logger.Debug("Computed pair distance",
		"first", pair.First,
		"second", pair.Second,
		"distance", d,
		"duration", elapsed,
	)
	return d, nil
}

func (e *Engine) fail(err error) error {
	e.recorder.RunFailed(failureReason(err))
	e.logger.Error("Distance computation aborted", "error", err)
	return err
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownMetric):
		return "unknown_metric"
	case errors.Is(err, domain.ErrIOFailure):
		return "io_failure"
	case errors.Is(err, domain.ErrMetricPrecondition):
		return "metric_precondition"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}

type nopProgress struct{}

func (nopProgress) Start(int) {}
func (nopProgress) Advance()  {}
func (nopProgress) Finish()   {}

type nopRecorder struct{}

func (nopRecorder) PairCompared(string, float64) {}
func (nopRecorder) BytesLoaded(int)              {}
func (nopRecorder) RunFailed(string)             {}
