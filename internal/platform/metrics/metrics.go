package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsTotal  *prometheus.CounterVec
	AccountsCreated     prometheus.Counter
	RateLimitRejections prometheus.Counter
	CompensationsTotal  prometheus.Counter
	GeocodeLookups      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shulchan_registrations_total",
			Help: "Registration requests by outcome",
		}, []string{"outcome"}),
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shulchan_accounts_created_total",
			Help: "Total number of credential accounts provisioned",
		}),
		RateLimitRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shulchan_rate_limit_rejections_total",
			Help: "Registration requests rejected by the rate limiter",
		}),
		CompensationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shulchan_credential_compensations_total",
			Help: "Credentials deleted after a failed record insert",
		}),
		GeocodeLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shulchan_geocode_lookups_total",
			Help: "Address search lookups proxied upstream",
		}),
	}
}

// RecordRegistration counts one registration attempt by outcome
// (accepted, validation_failed, rate_limited, error).
func (m *Metrics) RecordRegistration(outcome string) {
	m.RegistrationsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAccountsCreated() {
	m.AccountsCreated.Inc()
}

func (m *Metrics) IncrementRateLimitRejections() {
	m.RateLimitRejections.Inc()
}

func (m *Metrics) IncrementCompensations() {
	m.CompensationsTotal.Inc()
}

func (m *Metrics) IncrementGeocodeLookups() {
	m.GeocodeLookups.Inc()
}
