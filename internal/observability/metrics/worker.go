package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	tagTotal    *prometheus.CounterVec
	tagDuration *prometheus.HistogramVec
	tagInFlight prometheus.Gauge
	queueLag    *prometheus.HistogramVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	tagTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "worker",
			Name:      "item_tag_total",
			Help:      "Total tagging retries by status.",
		},
		[]string{"service", "status"},
	)
	tagDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "worker",
			Name:      "item_tag_duration_seconds",
			Help:      "Tagging retry duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	tagInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "outfit",
			Subsystem: "worker",
			Name:      "item_tag_in_flight",
			Help:      "Number of in-flight tagging retries.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Time between event publish and consumption in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
		[]string{"service"},
	)

	registry.MustRegister(tagTotal, tagDuration, tagInFlight, queueLag)

	return &WorkerMetrics{
		registry:    registry,
		tagTotal:    tagTotal,
		tagDuration: tagDuration,
		tagInFlight: tagInFlight,
		queueLag:    queueLag,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartItem() {
	m.tagInFlight.Inc()
}

func (m *WorkerMetrics) FinishItem(service string, duration time.Duration, err error) {
	m.tagInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.tagTotal.WithLabelValues(service, status).Inc()
	m.tagDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

// ObserveQueueLag records how long an event sat on the queue before the
// worker picked it up.
func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		lag = 0
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}
