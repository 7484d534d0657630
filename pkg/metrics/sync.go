package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records refresh passes against the remote services.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewSyncMetrics registers the refresh metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refresh_duration_seconds",
		Help:    "Duration of remote refresh passes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"target"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refresh_success",
		Help: "Successful remote refresh passes.",
	}, []string{"target"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refresh_failure",
		Help: "Failed remote refresh passes.",
	}, []string{"target"})
	reg.MustRegister(duration, success, failure)
	return &SyncMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named refresh target.
func (s *SyncMetrics) ObserveDuration(target string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(target)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named target.
func (s *SyncMetrics) IncSuccess(target string) {
	if s == nil || s.success == nil {
		return
	}
	s.success.WithLabelValues(normalizeLabel(target)).Inc()
}

// IncFailure increments the failure counter for the named target.
func (s *SyncMetrics) IncFailure(target string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(target)).Inc()
}

func normalizeLabel(target string) string {
	if target == "" {
		return "unknown"
	}
	return target
}
