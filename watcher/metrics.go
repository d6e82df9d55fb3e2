package watcher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "statuswatch"

var (
	pollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "watcher",
			Name:      "polls_total",
			Help:      "Poll cycles per provider by result",
		},
		[]string{"provider", "result"},
	)

	incidentsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "watcher",
			Name:      "incidents_emitted_total",
			Help:      "New incidents emitted per provider",
		},
		[]string{"provider"},
	)

	pollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "watcher",
			Name:      "poll_duration_seconds",
			Help:      "Duration of one provider poll cycle",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)
)

func recordPoll(provider, result string, d time.Duration) {
	pollsTotal.WithLabelValues(provider, result).Inc()
	pollDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func recordEmitted(provider string, count int) {
	if count > 0 {
		incidentsEmitted.WithLabelValues(provider).Add(float64(count))
	}
}
