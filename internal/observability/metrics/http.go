package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	uploadsTotal        *prometheus.CounterVec
	compositionsTotal   *prometheus.CounterVec
	compositionDuration *prometheus.HistogramVec
	compositionDropped  *prometheus.CounterVec
	compositionCatalog  *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "outfit",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	uploadsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "intake",
			Name:      "uploads_total",
			Help:      "Total item uploads by tagging outcome.",
		},
		[]string{"service", "tagging"},
	)
	compositionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "compose",
			Name:      "requests_total",
			Help:      "Total composition requests by outcome.",
		},
		[]string{"service", "outcome"},
	)
	compositionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "compose",
			Name:      "duration_seconds",
			Help:      "Composition duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	compositionDropped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "outfit",
			Subsystem: "compose",
			Name:      "dropped_identifiers_total",
			Help:      "Collaborator identifiers dropped during validation.",
		},
		[]string{"service"},
	)
	compositionCatalog := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "outfit",
			Subsystem: "compose",
			Name:      "catalog_items",
			Help:      "Catalog size per composition request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal, requestDuration, requestInFlight,
		uploadsTotal, compositionsTotal, compositionDuration, compositionDropped, compositionCatalog,
	)

	return &HTTPServerMetrics{
		registry:            registry,
		requestTotal:        requestTotal,
		requestDuration:     requestDuration,
		requestInFlight:     requestInFlight,
		uploadsTotal:        uploadsTotal,
		compositionsTotal:   compositionsTotal,
		compositionDuration: compositionDuration,
		compositionDropped:  compositionDropped,
		compositionCatalog:  compositionCatalog,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) StartRequest() {
	m.requestInFlight.Inc()
}

func (m *HTTPServerMetrics) FinishRequest(service, method, path string, status int, duration time.Duration) {
	m.requestInFlight.Dec()
	m.requestTotal.WithLabelValues(service, method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(service, method, path).Observe(duration.Seconds())
}

func (m *HTTPServerMetrics) ObserveUpload(service string, tagged bool) {
	outcome := "tagged"
	if !tagged {
		outcome = "degraded"
	}
	m.uploadsTotal.WithLabelValues(service, outcome).Inc()
}

func (m *HTTPServerMetrics) ObserveComposition(service, outcome string, duration time.Duration) {
	m.compositionsTotal.WithLabelValues(service, outcome).Inc()
	m.compositionDuration.WithLabelValues(service).Observe(duration.Seconds())
}

// ObserveCompositionCatalog records the snapshot size the selection ran
// against. It is only called when that size is known, so failed requests
// never skew the histogram with zeroes.
func (m *HTTPServerMetrics) ObserveCompositionCatalog(service string, catalogSize, droppedIDs int) {
	m.compositionCatalog.WithLabelValues(service).Observe(float64(catalogSize))
	if droppedIDs > 0 {
		m.compositionDropped.WithLabelValues(service).Add(float64(droppedIDs))
	}
}
