package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	TokensIssued     uint64 `json:"tokens_issued"`
	AuthMissing      uint64 `json:"auth_missing"`
	AuthInvalid      uint64 `json:"auth_invalid"`
	AuthForbidden    uint64 `json:"auth_forbidden"`
	UsersRegistered  uint64 `json:"users_registered"`
	DonorSearches    uint64 `json:"donor_searches"`
	ProfilesUpserted uint64 `json:"profiles_upserted"`
	RequestsCreated  uint64 `json:"requests_created"`
	RequestsDeleted  uint64 `json:"requests_deleted"`
}

// InMemoryRecorder stores metrics in memory. It backs the admin metrics
// endpoint and doubles as a test recorder.
type InMemoryRecorder struct {
	tokensIssued     uint64
	authMissing      uint64
	authInvalid      uint64
	authForbidden    uint64
	usersRegistered  uint64
	donorSearches    uint64
	profilesUpserted uint64
	requestsCreated  uint64
	requestsDeleted  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		TokensIssued:     atomic.LoadUint64(&m.tokensIssued),
		AuthMissing:      atomic.LoadUint64(&m.authMissing),
		AuthInvalid:      atomic.LoadUint64(&m.authInvalid),
		AuthForbidden:    atomic.LoadUint64(&m.authForbidden),
		UsersRegistered:  atomic.LoadUint64(&m.usersRegistered),
		DonorSearches:    atomic.LoadUint64(&m.donorSearches),
		ProfilesUpserted: atomic.LoadUint64(&m.profilesUpserted),
		RequestsCreated:  atomic.LoadUint64(&m.requestsCreated),
		RequestsDeleted:  atomic.LoadUint64(&m.requestsDeleted),
	}
}

// IncTokenIssued increments the issued-token counter.
func (m *InMemoryRecorder) IncTokenIssued() {
	atomic.AddUint64(&m.tokensIssued, 1)
}

// IncAuthFailure increments the failure counter for the given reason.
func (m *InMemoryRecorder) IncAuthFailure(reason string) {
	switch reason {
	case "missing":
		atomic.AddUint64(&m.authMissing, 1)
	case "forbidden":
		atomic.AddUint64(&m.authForbidden, 1)
	default:
		atomic.AddUint64(&m.authInvalid, 1)
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncDonorSearch increments the donor search counter.
func (m *InMemoryRecorder) IncDonorSearch() {
	atomic.AddUint64(&m.donorSearches, 1)
}

// IncProfileUpserted increments the profile upsert counter.
func (m *InMemoryRecorder) IncProfileUpserted() {
	atomic.AddUint64(&m.profilesUpserted, 1)
}

// IncRequestCreated increments the created-request counter.
func (m *InMemoryRecorder) IncRequestCreated() {
	atomic.AddUint64(&m.requestsCreated, 1)
}

// IncRequestDeleted increments the deleted-request counter.
func (m *InMemoryRecorder) IncRequestDeleted() {
	atomic.AddUint64(&m.requestsDeleted, 1)
}
