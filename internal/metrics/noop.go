package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncTokenIssued is a no-op.
func (n *NoopRecorder) IncTokenIssued() {}

// IncAuthFailure is a no-op.
func (n *NoopRecorder) IncAuthFailure(reason string) {}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncDonorSearch is a no-op.
func (n *NoopRecorder) IncDonorSearch() {}

// IncProfileUpserted is a no-op.
func (n *NoopRecorder) IncProfileUpserted() {}

// IncRequestCreated is a no-op.
func (n *NoopRecorder) IncRequestCreated() {}

// IncRequestDeleted is a no-op.
func (n *NoopRecorder) IncRequestDeleted() {}
