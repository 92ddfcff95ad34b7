// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Registration outcomes.
const (
	RegistrationSuccess        = "success"
	RegistrationDuplicateEmail = "duplicate_email"
	RegistrationWeakPassword   = "weak_password"
	RegistrationError          = "error"
)

// Login outcomes.
const (
	LoginSuccess            = "success"
	LoginInvalidCredentials = "invalid_credentials"
	LoginInactiveAccount    = "inactive_account"
	LoginError              = "error"
)

// Token verification outcomes.
const (
	TokenValid   = "valid"
	TokenExpired = "expired"
	TokenInvalid = "invalid"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Auth flow metrics
	IncRegistration(outcome string)
	IncLogin(outcome string)
	IncTokenVerification(outcome string)
	ObserveHashDuration(duration time.Duration)

	// Principal cache metrics
	IncAuthCacheHit()
	IncAuthCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
