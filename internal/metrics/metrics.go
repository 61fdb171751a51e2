package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Histogram of round-trip times for upstream provider calls.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "endpoint", "outcome"},
	)
	snapshotsBuilt = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshots_total",
			Help: "Number of weather snapshot builds by result.",
		},
		[]string{"result"},
	)

	registerOnce sync.Once
)

// Register adds the collectors to the default prometheus registry. It is safe
// to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(upstreamDuration, snapshotsBuilt)
	})
}

// ObserveUpstream records one upstream round trip.
func ObserveUpstream(provider, endpoint, outcome string, seconds float64) {
	upstreamDuration.WithLabelValues(provider, endpoint, outcome).Observe(seconds)
}

// CountSnapshot records the result ("ok" or "error") of a snapshot build.
func CountSnapshot(result string) {
	snapshotsBuilt.WithLabelValues(result).Inc()
}
