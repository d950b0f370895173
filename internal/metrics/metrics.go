// Package metrics exposes the Prometheus instrumentation for the site API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric.
const Namespace = "siteapi"

// Metrics holds the Prometheus collectors.
type Metrics struct {
	ContentFetches *prometheus.CounterVec
	BookingsTotal  *prometheus.CounterVec
	AppsTotal      *prometheus.CounterVec
	MailsSent      *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

// New creates and registers the collectors. A nil registerer falls back to
// the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		ContentFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "content_fetches_total",
				Help:      "Content source fetches by content type and result",
			},
			[]string{"content_type", "result"},
		),
		BookingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "bookings_total",
				Help:      "Appointment booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		AppsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "applications_total",
				Help:      "Job application attempts by outcome",
			},
			[]string{"outcome"},
		),
		MailsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "mails_sent_total",
				Help:      "Transactional mails by kind and result",
			},
			[]string{"kind", "result"},
		),
		RequestSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}
}

// Booking outcome label values.
const (
	OutcomeConfirmed   = "confirmed"
	OutcomeWeeklyLimit = "weekly_limit"
	OutcomeRejected    = "rejected"
	OutcomeInvalid     = "invalid"
)
