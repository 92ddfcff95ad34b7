package handler

import (
	"fmt"
	"net/http"

	"github.com/staynest/staynest/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "staynest_registrations_total{outcome=\"success\"} %d\n", snap.RegistrationsSuccess)
	writeMetric(w, "staynest_registrations_total{outcome=\"duplicate_email\"} %d\n", snap.RegistrationsDuplicate)
	writeMetric(w, "staynest_registrations_total{outcome=\"weak_password\"} %d\n", snap.RegistrationsWeakPassword)
	writeMetric(w, "staynest_registrations_total{outcome=\"error\"} %d\n", snap.RegistrationsError)

	writeMetric(w, "staynest_logins_total{outcome=\"success\"} %d\n", snap.LoginsSuccess)
	writeMetric(w, "staynest_logins_total{outcome=\"invalid_credentials\"} %d\n", snap.LoginsInvalidCredentials)
	writeMetric(w, "staynest_logins_total{outcome=\"inactive_account\"} %d\n", snap.LoginsInactiveAccount)
	writeMetric(w, "staynest_logins_total{outcome=\"error\"} %d\n", snap.LoginsError)

	writeMetric(w, "staynest_token_verifications_total{outcome=\"valid\"} %d\n", snap.TokensValid)
	writeMetric(w, "staynest_token_verifications_total{outcome=\"expired\"} %d\n", snap.TokensExpired)
	writeMetric(w, "staynest_token_verifications_total{outcome=\"invalid\"} %d\n", snap.TokensInvalid)

	writeMetric(w, "staynest_hash_duration_seconds_count %d\n", snap.HashDurationCount)
	writeMetric(w, "staynest_hash_duration_seconds_sum %.6f\n", float64(snap.HashDurationTotalNs)/1e9)

	writeMetric(w, "staynest_auth_cache_hits_total %d\n", snap.AuthCacheHits)
	writeMetric(w, "staynest_auth_cache_misses_total %d\n", snap.AuthCacheMisses)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
