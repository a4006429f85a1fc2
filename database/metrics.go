package database

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type executorMetrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newExecutorMetrics(registerer prometheus.Registerer) (*executorMetrics, error) {
	m := &executorMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resource",
			Subsystem: "database",
			Name:      "queries_total",
			Help:      "Total number of executed queries",
		}, []string{"driver", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resource",
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Query execution duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"driver"}),
	}

	for _, collector := range []prometheus.Collector{m.queries, m.duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *executorMetrics) observe(driver string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil && err != ErrRecordNotFound {
		status = "error"
	}
	m.queries.WithLabelValues(driver, status).Inc()
	m.duration.WithLabelValues(driver).Observe(elapsed.Seconds())
}
