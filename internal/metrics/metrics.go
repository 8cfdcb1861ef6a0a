// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncTokenIssued()
	IncAuthFailure(reason string) // reason: "missing", "invalid", "forbidden"
	IncUserRegistered()
	IncDonorSearch()
	IncProfileUpserted()
	IncRequestCreated()
	IncRequestDeleted()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
