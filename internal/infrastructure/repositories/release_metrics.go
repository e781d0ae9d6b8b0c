package repositories

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeFound       = "found"
	OutcomeNone        = "none"
	OutcomeUnsupported = "unsupported"

	unknownProvider = "unknown"
)

// ReleaseMetrics collects what the release lookups of a single run did.
type ReleaseMetrics struct {
	registry       *prometheus.Registry
	Lookups        *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
}

// NewReleaseMetrics creates the lookup metrics on a registry of their own, so
// every run starts from zero.
func NewReleaseMetrics() *ReleaseMetrics {
	m := &ReleaseMetrics{registry: prometheus.NewRegistry()}

	m.Lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fetchbump_release_lookups_total",
			Help: "Release lookups by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	m.LookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fetchbump_release_lookup_duration_seconds",
			Help:    "Duration of release lookups against the provider API",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	m.registry.MustRegister(m.Lookups, m.LookupDuration)
	return m
}

// Gatherer exposes the underlying registry.
func (m *ReleaseMetrics) Gatherer() prometheus.Gatherer { return m.registry }

// WriteToFile dumps the metrics in the node exporter textfile format.
func (m *ReleaseMetrics) WriteToFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}

func (m *ReleaseMetrics) observeLookup(provider, outcome string, elapsed time.Duration) {
	m.Lookups.WithLabelValues(provider, outcome).Inc()
	m.LookupDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *ReleaseMetrics) observeUnsupported(provider string) {
	m.Lookups.WithLabelValues(provider, OutcomeUnsupported).Inc()
}
