// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics collects and exposes Prometheus metrics for the accounts API.

A single [Collector] satisfies both [middleware.MetricsRecorder] (per-request
traffic) and [auth.EventRecorder] (registration and login outcomes).
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accounts"

// Collector records metrics into a Prometheus registry.
type Collector struct {
	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	authEvents   *prometheus.CounterVec
}

// NewCollector creates a [Collector] and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	collector := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by method, route pattern and status code.",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Registration and login outcomes.",
		}, []string{"event"}),
	}

	reg.MustRegister(
		collector.httpRequests,
		collector.httpLatency,
		collector.authEvents,
	)

	return collector
}

// RecordHTTPRequest counts a finished request and observes its latency.
func (collector *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	collector.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	collector.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAuthEvent counts an authentication outcome.
func (collector *Collector) RecordAuthEvent(event string) {
	collector.authEvents.WithLabelValues(event).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
