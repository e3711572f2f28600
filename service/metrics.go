package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	// operationTotal 按操作和结果统计
	operationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deck_operations_total",
		Help: "Deck operations by operation and result",
	}, []string{"operation", "result"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deck_operation_duration_seconds",
		Help:    "Deck operation latency including the wait for the session turn",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"operation"})

	historyDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deck_history_depth",
		Help: "Number of undoable states kept in the session history",
	})

	currentRevision = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deck_revision",
		Help: "Revision of the current deck state",
	})
)

func observe(operation, result string, start time.Time) {
	operationTotal.WithLabelValues(operation, result).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
