package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	RegistrationsSuccess       uint64
	RegistrationsDuplicate     uint64
	RegistrationsWeakPassword  uint64
	RegistrationsError         uint64
	LoginsSuccess              uint64
	LoginsInvalidCredentials   uint64
	LoginsInactiveAccount      uint64
	LoginsError                uint64
	TokensValid                uint64
	TokensExpired              uint64
	TokensInvalid              uint64
	HashDurationCount          uint64
	HashDurationTotalNs        int64
	AuthCacheHits              uint64
	AuthCacheMisses            uint64
}

// InMemoryRecorder stores metrics in memory for tests and the admin
// metrics endpoint.
type InMemoryRecorder struct {
	registrationsSuccess      uint64
	registrationsDuplicate    uint64
	registrationsWeakPassword uint64
	registrationsError        uint64
	loginsSuccess             uint64
	loginsInvalidCredentials  uint64
	loginsInactiveAccount     uint64
	loginsError               uint64
	tokensValid               uint64
	tokensExpired             uint64
	tokensInvalid             uint64
	hashDurationCount         uint64
	hashDurationTotalNs       int64
	authCacheHits             uint64
	authCacheMisses           uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		RegistrationsSuccess:      atomic.LoadUint64(&m.registrationsSuccess),
		RegistrationsDuplicate:    atomic.LoadUint64(&m.registrationsDuplicate),
		RegistrationsWeakPassword: atomic.LoadUint64(&m.registrationsWeakPassword),
		RegistrationsError:        atomic.LoadUint64(&m.registrationsError),
		LoginsSuccess:             atomic.LoadUint64(&m.loginsSuccess),
		LoginsInvalidCredentials:  atomic.LoadUint64(&m.loginsInvalidCredentials),
		LoginsInactiveAccount:     atomic.LoadUint64(&m.loginsInactiveAccount),
		LoginsError:               atomic.LoadUint64(&m.loginsError),
		TokensValid:               atomic.LoadUint64(&m.tokensValid),
		TokensExpired:             atomic.LoadUint64(&m.tokensExpired),
		TokensInvalid:             atomic.LoadUint64(&m.tokensInvalid),
		HashDurationCount:         atomic.LoadUint64(&m.hashDurationCount),
		HashDurationTotalNs:       atomic.LoadInt64(&m.hashDurationTotalNs),
		AuthCacheHits:             atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses:           atomic.LoadUint64(&m.authCacheMisses),
	}
}

// IncRegistration increments the registration counter for an outcome.
func (m *InMemoryRecorder) IncRegistration(outcome string) {
	switch outcome {
	case RegistrationSuccess:
		atomic.AddUint64(&m.registrationsSuccess, 1)
	case RegistrationDuplicateEmail:
		atomic.AddUint64(&m.registrationsDuplicate, 1)
	case RegistrationWeakPassword:
		atomic.AddUint64(&m.registrationsWeakPassword, 1)
	default:
		atomic.AddUint64(&m.registrationsError, 1)
	}
}

// IncLogin increments the login counter for an outcome.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	switch outcome {
	case LoginSuccess:
		atomic.AddUint64(&m.loginsSuccess, 1)
	case LoginInvalidCredentials:
		atomic.AddUint64(&m.loginsInvalidCredentials, 1)
	case LoginInactiveAccount:
		atomic.AddUint64(&m.loginsInactiveAccount, 1)
	default:
		atomic.AddUint64(&m.loginsError, 1)
	}
}

// IncTokenVerification increments the token verification counter for an outcome.
func (m *InMemoryRecorder) IncTokenVerification(outcome string) {
	switch outcome {
	case TokenValid:
		atomic.AddUint64(&m.tokensValid, 1)
	case TokenExpired:
		atomic.AddUint64(&m.tokensExpired, 1)
	default:
		atomic.AddUint64(&m.tokensInvalid, 1)
	}
}

// ObserveHashDuration records the time spent hashing a credential.
func (m *InMemoryRecorder) ObserveHashDuration(duration time.Duration) {
	atomic.AddUint64(&m.hashDurationCount, 1)
	atomic.AddInt64(&m.hashDurationTotalNs, duration.Nanoseconds())
}

// IncAuthCacheHit increments the principal cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the principal cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}
