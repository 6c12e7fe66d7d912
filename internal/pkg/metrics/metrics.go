// Package metrics exposes Prometheus metrics for the dashboard service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DashboardMetrics collects counters and gauges for the prediction session.
type DashboardMetrics struct {
	registry *prometheus.Registry

	PredictionsSaved  *prometheus.CounterVec // outcome: new | replaced
	ValueBetsSaved    prometheus.Counter
	ValueBetsUpdated  prometheus.Counter
	PropagationFanout prometheus.Histogram
	DatasetRefreshes  *prometheus.CounterVec // status: ok | error

	PredictionCount prometheus.Gauge
	ValueBetCount   prometheus.Gauge
}

func New() *DashboardMetrics {
	m := &DashboardMetrics{
		registry: prometheus.NewRegistry(),

		PredictionsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchsight_predictions_saved_total",
			Help: "Prediction saves, split by whether a new fixture was added or an existing one replaced.",
		}, []string{"outcome"}),

		ValueBetsSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsight_value_bets_saved_total",
			Help: "Value bets appended to the session store.",
		}),

		ValueBetsUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchsight_value_bets_updated_total",
			Help: "Value bet update operations, including silent no-ops.",
		}),

		PropagationFanout: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchsight_propagation_fanout",
			Help:    "Predictions touched per value-bet propagation step.",
			Buckets: []float64{0, 1, 2, 5, 10},
		}),

		DatasetRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchsight_dataset_refreshes_total",
			Help: "Historical dataset refresh attempts by status.",
		}, []string{"status"}),

		PredictionCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchsight_predictions",
			Help: "Predictions currently held by the session store.",
		}),

		ValueBetCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchsight_value_bets",
			Help: "Value bets currently held by the session store.",
		}),
	}

	m.registry.MustRegister(
		m.PredictionsSaved,
		m.ValueBetsSaved,
		m.ValueBetsUpdated,
		m.PropagationFanout,
		m.DatasetRefreshes,
		m.PredictionCount,
		m.ValueBetCount,
	)
	return m
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func (m *DashboardMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
