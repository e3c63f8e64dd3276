package domain

import "errors"

// Error taxonomy shared by the core, the adapters and the CLI. Callers match
// with errors.Is; the concrete errors wrap one of these with details.
var (
	// ErrInvalidInput reports a path that does not exist or is not a regular file.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInsufficientInput reports fewer than two usable files.
	ErrInsufficientInput = errors.New("insufficient input")
	// ErrUnknownMetric reports an algorithm name missing from the registry.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrIOFailure reports a read error while loading file contents.
	ErrIOFailure = errors.New("io failure")
	// ErrMetricPrecondition reports inputs a metric is not defined for,
	// e.g. Hamming distance over texts of different lengths.
	ErrMetricPrecondition = errors.New("metric precondition violated")
)
