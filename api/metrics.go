/*
metrics.go - Prometheus instrumentation for the API server

PURPOSE:
  Collects the operational metrics the /metrics endpoint exposes:
  request counts, snapshot computation latency, and the latest composite
  health score as a gauge so operators can alert on it.

DESIGN:
  Each Instruments value owns a private registry. The server mounts
  promhttp for that registry; nothing registers globally, so test servers
  can be created side by side without duplicate-registration panics.

SEE ALSO:
  - server.go: Middleware that feeds the request counter
  - handlers.go: Snapshot computation feeding duration and health score
*/
package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Instruments holds the Prometheus metrics for one server instance.
type Instruments struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	ComputeDuration prometheus.Histogram
	HealthScore     prometheus.Gauge
	ScenarioLoads   *prometheus.CounterVec
}

// NewInstruments creates and registers the metric set.
func NewInstruments() *Instruments {
	in := &Instruments{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "floorsight_http_requests_total",
				Help: "HTTP requests by method, matched route and status code",
			},
			[]string{"method", "route", "status"},
		),

		ComputeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "floorsight_snapshot_compute_seconds",
				Help:    "Time spent computing dashboard snapshots",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
		),

		HealthScore: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "floorsight_health_score",
				Help: "Latest composite production health score (0-100)",
			},
		),

		ScenarioLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "floorsight_scenario_loads_total",
				Help: "Demo scenario loads by scenario id",
			},
			[]string{"scenario"},
		),
	}

	in.registry.MustRegister(
		in.Requests,
		in.ComputeDuration,
		in.HealthScore,
		in.ScenarioLoads,
	)

	return in
}

// HTTPHandler serves this instance's registry in Prometheus text format.
func (in *Instruments) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(in.registry, promhttp.HandlerOpts{})
}
