// Package metrics exposes Prometheus instruments for outbound directory requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sportify"

type Recorder struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	resolved *prometheus.CounterVec
}

// NewRecorder registers the instruments on reg. A nil reg leaves them unregistered,
// which is what tests want.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "requests_total",
			Help:      "Directory API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "directory",
			Name:      "request_duration_seconds",
			Help:      "Directory API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		resolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "resolutions_total",
			Help:      "Event resolutions by source and outcome.",
		}, []string{"source", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(r.requests, r.duration, r.resolved)
	}
	return r
}

func (r *Recorder) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(endpoint, outcome).Inc()
	r.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveResolution(source, outcome string) {
	if r == nil {
		return
	}
	r.resolved.WithLabelValues(source, outcome).Inc()
}

// RequestCount is exposed for tests and the health endpoint.
func (r *Recorder) RequestCount(endpoint, outcome string) prometheus.Counter {
	return r.requests.WithLabelValues(endpoint, outcome)
}

func (r *Recorder) ResolutionCount(source, outcome string) prometheus.Counter {
	return r.resolved.WithLabelValues(source, outcome)
}
