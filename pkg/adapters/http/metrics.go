package http

import (
	"context"
	"net/http"

	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records renders through the engine's lifecycle hooks.
type Metrics struct {
	Renders  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	gatherer prometheus.Gatherer
}

// NewMetrics registers the render metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "probmodels_renders_total",
				Help: "Total number of diagram renders",
			},
			[]string{"model", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "probmodels_render_duration_seconds",
				Help:    "Duration of diagram renders",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"model"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.Renders, m.Duration)
	return m
}

// Hooks returns lifecycle hooks that feed the metrics. Chain them into
// probmodels.WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRenderEnd: func(ctx context.Context, e *domain.RenderEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.Renders.WithLabelValues(string(e.Model), outcome).Inc()
			m.Duration.WithLabelValues(string(e.Model)).Observe(e.Duration.Seconds())
		},
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
