package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "edudocs"

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	repositoryDuration    *prometheus.HistogramVec
	repositoryErrorsTotal *prometheus.CounterVec
	assistantRepliesTotal *prometheus.CounterVec
	blobsStored           prometheus.Gauge
	sessionSubscribers    prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_latency_seconds",
			Help:      "Latency distribution for API requests.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		repositoryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_duration_seconds",
			Help:      "Duration of repository operations including simulated latency.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 1.0},
		}, []string{"operation"})

		repositoryErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "repository",
			Name:      "operation_errors_total",
			Help:      "Number of repository operations that returned an error.",
		}, []string{"operation"})

		assistantRepliesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "replies_total",
			Help:      "Assistant replies by outcome.",
		}, []string{"outcome"})

		blobsStored = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "blobs_stored",
			Help:      "Number of transient blobs held in memory.",
		})

		sessionSubscribers = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "subscribers_active",
			Help:      "Number of active session state subscribers.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			repositoryDuration,
			repositoryErrorsTotal,
			assistantRepliesTotal,
			blobsStored,
			sessionSubscribers,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// RepositoryDuration exposes the repository operation histogram.
func RepositoryDuration() *prometheus.HistogramVec {
	RegisterMetrics()
	return repositoryDuration
}

// RepositoryErrors exposes the repository error counter.
func RepositoryErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return repositoryErrorsTotal
}

// AssistantReplies exposes the assistant outcome counter.
func AssistantReplies() *prometheus.CounterVec {
	RegisterMetrics()
	return assistantRepliesTotal
}

// BlobsStored exposes the gauge of in-memory blobs.
func BlobsStored() prometheus.Gauge {
	RegisterMetrics()
	return blobsStored
}

// SessionSubscribers exposes the gauge of session subscribers.
func SessionSubscribers() prometheus.Gauge {
	RegisterMetrics()
	return sessionSubscribers
}
