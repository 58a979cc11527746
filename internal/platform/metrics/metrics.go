package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service. A nil *Metrics is
// valid and records nothing, which keeps unit tests free of registry setup.
type Metrics struct {
	RegistrationsTotal  prometheus.Counter
	LoginsTotal         prometheus.Counter
	SessionsDestroyed   prometheus.Counter
	StaleSessionsHealed prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "session_server_registrations_total",
			Help: "Total number of users registered",
		}),
		LoginsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "session_server_logins_total",
			Help: "Total number of successful logins",
		}),
		SessionsDestroyed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "session_server_sessions_destroyed_total",
			Help: "Total number of sessions destroyed via logout",
		}),
		StaleSessionsHealed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "session_server_stale_sessions_healed_total",
			Help: "Sessions destroyed because their user no longer exists",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "session_server_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) IncRegistrations() {
	if m != nil {
		m.RegistrationsTotal.Inc()
	}
}

func (m *Metrics) IncLogins() {
	if m != nil {
		m.LoginsTotal.Inc()
	}
}

func (m *Metrics) IncSessionsDestroyed() {
	if m != nil {
		m.SessionsDestroyed.Inc()
	}
}

func (m *Metrics) IncStaleSessionsHealed() {
	if m != nil {
		m.StaleSessionsHealed.Inc()
	}
}

// ObserveRequest records one request latency sample.
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if m != nil {
		m.RequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	}
}
