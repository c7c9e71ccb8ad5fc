package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Client holds request instrumentation for the backend API client.
type Client struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewClient registers the collectors on a private registry.
func NewClient() *Client {
	c := &Client{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transitpay",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Backend API requests by route, method and HTTP status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "transitpay",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Backend API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "transitpay",
			Subsystem: "api",
			Name:      "failures_total",
			Help:      "Failed backend API requests by kind (network, unauthorized, api, decode).",
		}, []string{"route", "kind"}),
	}
	c.registry.MustRegister(c.requests, c.duration, c.failures)
	return c
}

// Observe records one completed round trip. status is 0 when no response arrived.
func (c *Client) Observe(route, method string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Failure counts a failed request.
func (c *Client) Failure(route, kind string) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(route, kind).Inc()
}

// Gatherer exposes the registry.
func (c *Client) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile dumps the registry for the node-exporter textfile collector.
func (c *Client) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.registry)
}
