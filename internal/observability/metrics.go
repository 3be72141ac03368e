// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Scoring metrics
	BallsRecorded   prometheus.Counter
	BallsUndone     prometheus.Counter
	IllegalBalls    *prometheus.CounterVec
	WicketsRecorded *prometheus.CounterVec
	ScoringErrors   *prometheus.CounterVec

	// Sync metrics
	SyncAttempts  prometheus.Counter
	SyncRetries   prometheus.Counter
	SyncRollbacks prometheus.Counter
	SyncLatency   prometheus.Histogram

	// Replay metrics
	ReplayBallCount  prometheus.Histogram
	VerifyDivergence prometheus.Counter

	// Live feed metrics
	LiveClientsConnected prometheus.Gauge
	LiveMessagesSent     prometheus.Counter

	// Database metrics
	DBQueryErrors *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "boxcricket"
	}

	return &Metrics{
		BallsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "balls_recorded_total",
			Help:      "Total number of balls recorded authoritatively",
		}),
		BallsUndone: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "balls_undone_total",
			Help:      "Total number of balls removed by undo",
		}),
		IllegalBalls: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "illegal_balls_total",
			Help:      "Total number of illegal deliveries by kind",
		}, []string{"kind"}),
		WicketsRecorded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "wickets_recorded_total",
			Help:      "Total number of wickets by type",
		}, []string{"wicket_type"}),
		ScoringErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "errors_total",
			Help:      "Total number of scoring errors by operation",
		}, []string{"operation"}),

		SyncAttempts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "attempts_total",
			Help:      "Total number of authoritative sync attempts",
		}),
		SyncRetries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "retries_total",
			Help:      "Total number of sync retries after transient failure",
		}),
		SyncRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "rollbacks_total",
			Help:      "Total number of optimistic states rolled back",
		}),
		SyncLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "latency_seconds",
			Help:      "Latency of authoritative sync including retries",
			Buckets:   prometheus.DefBuckets,
		}),

		ReplayBallCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "replay",
			Name:      "ball_count",
			Help:      "Number of balls per full log replay",
			Buckets:   prometheus.LinearBuckets(0, 12, 10),
		}),
		VerifyDivergence: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "replay",
			Name:      "verify_divergences_total",
			Help:      "Total number of divergences found by replay verification",
		}),

		LiveClientsConnected: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "clients_connected",
			Help:      "Number of connected live feed clients",
		}),
		LiveMessagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "live",
			Name:      "messages_sent_total",
			Help:      "Total number of live feed messages sent",
		}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Total number of database errors by store",
		}, []string{"store"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
