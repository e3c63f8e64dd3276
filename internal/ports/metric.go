package ports

// DistanceFunc computes the distance between two texts. Implementations are
// pure and deterministic.
type DistanceFunc func(a, b string) (float64, error)

// MetricResolver maps a metric name to its distance function.
type MetricResolver interface {
	Resolve(name string) (DistanceFunc, error)
}
