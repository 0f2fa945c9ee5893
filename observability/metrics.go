package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for geofence evaluation and alerting.
type Metrics struct {
	Evaluations        *prometheus.CounterVec // labels: outcome={ok,invalid_point,invalid_zone,error}
	Matches            *prometheus.CounterVec // labels: classification={safe,hazard}
	AlertsPublished    *prometheus.CounterVec // labels: outcome={success,error}
	EvaluationDuration prometheus.Histogram
	LocationsReceived  prometheus.Counter
	LocationsRejected  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourist_safety",
			Name:      "geofence_evaluations_total",
			Help:      "Geofence evaluations by outcome.",
		}, []string{"outcome"}),
		Matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourist_safety",
			Name:      "geofence_matches_total",
			Help:      "Zones containing an evaluated point, by classification.",
		}, []string{"classification"}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tourist_safety",
			Name:      "geofence_alerts_published_total",
			Help:      "Geofence alerts handed to the broker, by outcome.",
		}, []string{"outcome"}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tourist_safety",
			Name:      "geofence_evaluation_duration_seconds",
			Help:      "Time to load the active zone set and evaluate a point.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		LocationsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourist_safety",
			Name:      "locations_received_total",
			Help:      "Location messages received over MQTT.",
		}),
		LocationsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tourist_safety",
			Name:      "locations_rejected_total",
			Help:      "Location messages dropped as malformed or invalid.",
		}),
	}

	reg.MustRegister(
		m.Evaluations,
		m.Matches,
		m.AlertsPublished,
		m.EvaluationDuration,
		m.LocationsReceived,
		m.LocationsRejected,
	)

	return m
}
