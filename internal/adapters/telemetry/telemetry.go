// Package telemetry records run metrics in a private Prometheus registry.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder collects the counters and histograms of one run.
type Recorder struct {
	registry      *prometheus.Registry
	pairsCompared *prometheus.CounterVec
	pairDuration  *prometheus.HistogramVec
	bytesLoaded   prometheus.Counter
	runFailures   *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pairsCompared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mesi_pairs_compared_total",
			Help: "Number of file pairs whose distance was computed.",
		}, []string{"algorithm"}),
		pairDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mesi_pair_duration_seconds",
			Help:    "Time spent computing the distance of one pair.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"algorithm"}),
		bytesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mesi_bytes_loaded_total",
			Help: "Bytes of file content handed to the metrics.",
		}),
		runFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mesi_run_failures_total",
			Help: "Runs aborted, by reason.",
		}, []string{"reason"}),
	}
	r.registry.MustRegister(r.pairsCompared, r.pairDuration, r.bytesLoaded, r.runFailures)
	return r
}

// PairCompared counts one pair and observes its duration.
func (r *Recorder) PairCompared(algorithm string, seconds float64) {
	r.pairsCompared.WithLabelValues(algorithm).Inc()
	r.pairDuration.WithLabelValues(algorithm).Observe(seconds)
}

// BytesLoaded adds n loaded bytes.
func (r *Recorder) BytesLoaded(n int) {
	r.bytesLoaded.Add(float64(n))
}

// RunFailed counts an aborted run.
func (r *Recorder) RunFailed(reason string) {
	r.runFailures.WithLabelValues(reason).Inc()
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteFile writes the metrics in the Prometheus text format to path.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
