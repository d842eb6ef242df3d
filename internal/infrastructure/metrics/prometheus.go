// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "swapskillz"

// Registry owns a private prometheus registry so tests can create as many
// as they like without duplicate registration panics.
type Registry struct {
	registry *prometheus.Registry

	swapTransitions        *prometheus.CounterVec
	ratingRecomputeFailure prometheus.Counter
	requestDuration        *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		swapTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "swap_transitions_total",
				Help:      "Skill swap status changes by source status, target status and trigger.",
			},
			[]string{"from", "to", "trigger"},
		),
		ratingRecomputeFailure: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rating_recompute_failures_total",
				Help:      "User rating recomputations that failed after a review write.",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}

	r.registry.MustRegister(
		r.swapTransitions,
		r.ratingRecomputeFailure,
		r.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) SwapTransition(from, to, trigger string) {
	r.swapTransitions.WithLabelValues(from, to, trigger).Inc()
}

func (r *Registry) RatingRecomputeFailed() {
	r.ratingRecomputeFailure.Inc()
}

func (r *Registry) ObserveRequest(method, route string, status int, d time.Duration) {
	r.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
