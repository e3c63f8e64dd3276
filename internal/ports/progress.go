package ports

// ProgressReporter is advanced once per compared pair.
type ProgressReporter interface {
	Start(total int)
	Advance()
	Finish()
}

// Recorder receives run measurements.
type Recorder interface {
	PairCompared(algorithm string, seconds float64)
	BytesLoaded(n int)
	RunFailed(reason string)
}
