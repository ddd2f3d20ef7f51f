// Package metrics provides Prometheus metrics for the teamfit service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Optimization outcomes used as label values.
const (
	OutcomeOK           = "ok"
	OutcomeBackpressure = "backpressure"
	OutcomeTimeout      = "timeout"
	OutcomeInvalid      = "invalid"
)

// scoreBuckets covers the 0..100 score range in tens.
var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // fixed bucket layout

// Manager manages all Prometheus metrics for the teamfit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Core business metrics
	optimizations       *prometheus.CounterVec
	optimizationLatency prometheus.Histogram
	subsetsScored       prometheus.Counter
	samplerDraws        prometheus.Counter
	samplerExhausted    prometheus.Counter
	bestScore           prometheus.Histogram
	dimensionScore      *prometheus.HistogramVec
	recommendations     prometheus.Counter

	// Queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueued    prometheus.Counter
	queueDequeued    prometheus.Counter
	queueRejected    prometheus.Counter

	// Worker metrics
	workerCount   prometheus.Gauge
	workerBusy    prometheus.Gauge
	jobLatency    prometheus.Histogram
	jobsAbandoned prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamfit",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.optimizations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "optimizations_total",
		Help:        "Total number of optimization requests by outcome",
		ConstLabels: m.constLabels,
	}, []string{"outcome"})
	m.optimizationLatency = m.histogram("optimization_latency_milliseconds",
		"Time spent sampling and scoring one pool in milliseconds", m.histogramBuckets)
	m.subsetsScored = m.counter("subsets_scored_total", "Total number of candidate subsets scored")
	m.samplerDraws = m.counter("sampler_draws_total", "Total number of random subset draws, duplicates included")
	m.samplerExhausted = m.counter("sampler_exhausted_total",
		"Number of sampling runs that hit the retry ceiling before reaching the cap")
	m.bestScore = m.histogram("best_score", "Combined score of the best formation per optimization", scoreBuckets)
	m.dimensionScore = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "dimension_score",
		Help:        "Dimension scores of the best formation per optimization",
		Buckets:     scoreBuckets,
		ConstLabels: m.constLabels,
	}, []string{"dimension"})
	m.recommendations = m.counter("recommendations_total", "Total number of teammate recommendations served")

	m.queueSize = m.gauge("queue_size", "Current number of pending optimization jobs")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Total number of jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Total number of jobs dequeued")
	m.queueRejected = m.counter("queue_rejected_total", "Total number of jobs rejected because the queue was full")

	m.workerCount = m.gauge("worker_count", "Number of optimizer workers")
	m.workerBusy = m.gauge("worker_busy_count", "Number of workers currently optimizing")
	m.jobLatency = m.histogram("job_latency_milliseconds",
		"Time from enqueue to result in milliseconds", m.histogramBuckets)
	m.jobsAbandoned = m.counter("jobs_abandoned_total", "Jobs skipped because their caller had already given up")

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Total number of errors by type",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordOptimization counts one optimization request by outcome.
func RecordOptimization(outcome string) {
	globalManager.optimizations.WithLabelValues(outcome).Inc()
}

// RecordOptimizationLatency records engine time for one pool.
func RecordOptimizationLatency(latencyMs float64) {
	globalManager.optimizationLatency.Observe(latencyMs)
}

// RecordSampling records the sampler statistics of one optimization.
func RecordSampling(scored, draws int, exhausted bool) {
	globalManager.subsetsScored.Add(float64(scored))
	globalManager.samplerDraws.Add(float64(draws))
	if exhausted {
		globalManager.samplerExhausted.Inc()
	}
}

// RecordBestScore observes the best formation's combined score.
func RecordBestScore(score int) {
	globalManager.bestScore.Observe(float64(score))
}

// RecordDimensionScore observes one dimension score of the best formation.
func RecordDimensionScore(dimension string, score int) {
	globalManager.dimensionScore.WithLabelValues(dimension).Observe(float64(score))
}

// RecordRecommendations counts served recommendations.
func RecordRecommendations(n int) {
	globalManager.recommendations.Add(float64(n))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueRejected increments the rejected-job counter.
func RecordQueueRejected() {
	globalManager.queueRejected.Inc()
}

// UpdateWorkerCount sets the number of workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerBusy moves the busy-worker gauge by delta.
func AddWorkerBusy(delta int) {
	globalManager.workerBusy.Add(float64(delta))
}

// RecordJobLatency records the enqueue-to-result latency of a job.
func RecordJobLatency(latencyMs float64) {
	globalManager.jobLatency.Observe(latencyMs)
}

// RecordJobAbandoned counts a job skipped after its caller left.
func RecordJobAbandoned() {
	globalManager.jobsAbandoned.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
