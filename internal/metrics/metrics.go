// Package metrics exposes Prometheus counters for the HTTP surface and the account flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the HTTP layer reports into
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordAuthOutcome(operation, outcome string)
	RecordRateLimited(route string)
}

// Collector is the Prometheus backed Recorder
type Collector struct {
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	authOutcomes *prometheus.CounterVec
	rateLimited  *prometheus.CounterVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector registers the storefront metrics on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_auth_outcomes_total",
			Help: "Account operations by outcome",
		}, []string{"operation", "outcome"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"route"}),
	}

	reg.MustRegister(c.requests, c.latency, c.authOutcomes, c.rateLimited)
	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordAuthOutcome counts register, login and verify results, e.g. ("login", "authentication")
func (c *Collector) RecordAuthOutcome(operation, outcome string) {
	c.authOutcomes.WithLabelValues(operation, outcome).Inc()
}

func (c *Collector) RecordRateLimited(route string) {
	c.rateLimited.WithLabelValues(route).Inc()
}

// Handler serves the scrape endpoint for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything
type Nop struct{}

var _ Recorder = Nop{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthOutcome(string, string)                 {}
func (Nop) RecordRateLimited(string)                         {}
