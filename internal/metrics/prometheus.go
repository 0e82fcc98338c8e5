package metrics

import (
	"strconv"
	"sync"

	"github.com/arloliu/tasksplit/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered on first use, so constructing one is
// free and an unused collector never touches the registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	// Solve metrics
	solveTotal    *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	solveTasks    *prometheus.HistogramVec
	spread        *prometheus.HistogramVec

	// Search metrics
	searchLeaves *prometheus.HistogramVec

	// Cache metrics
	cacheLookups *prometheus.CounterVec

	// Service metrics
	requests *prometheus.CounterVec
	publish  *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "tasksplit" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "tasksplit"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.solveTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total partitioning calls by strategy and result (success|failure).",
		}, []string{"strategy", "result"})

		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "solve_duration_seconds",
			Help:      "Duration of partitioning calls in seconds by strategy.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10us .. ~2.6s
		}, []string{"strategy"})

		p.solveTasks = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "tasks_per_solve",
			Help:      "Number of tasks per partitioning call by machine count.",
			Buckets:   []float64{1, 2, 3, 5, 8, 10, 15, 25, 50, 100},
		}, []string{"machines"})

		p.spread = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "solver",
			Name:      "partition_spread",
			Help:      "Difference between the largest and smallest machine totals by strategy.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"strategy"})

		p.searchLeaves = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "search",
			Name:      "leaves",
			Help:      "Complete assignments scored per exhaustive search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12), // 1 .. ~4M
		}, []string{"strategy"})

		p.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Solution cache lookups by result (hit|miss).",
		}, []string{"result"})

		p.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "requests_total",
			Help:      "Solve requests handled by the service by result (ok|error|bad_request).",
		}, []string{"result"})

		p.publish = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "service",
			Name:      "publish_total",
			Help:      "Solution writes to the KV bucket by result (success|failure).",
		}, []string{"result"})

		p.reg.MustRegister(p.solveTotal)
		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solveTasks)
		p.reg.MustRegister(p.spread)
		p.reg.MustRegister(p.searchLeaves)
		p.reg.MustRegister(p.cacheLookups)
		p.reg.MustRegister(p.requests)
		p.reg.MustRegister(p.publish)
	})
}

// SolveMetrics implementation

// RecordSolve counts the call and observes its duration and size.
func (p *PrometheusCollector) RecordSolve(strategy string, tasks, machines int, duration float64, success bool) {
	p.ensureRegistered()
	p.solveTotal.WithLabelValues(strategy, outcome(success)).Inc()
	p.solveDuration.WithLabelValues(strategy).Observe(duration)
	p.solveTasks.WithLabelValues(strconv.Itoa(machines)).Observe(float64(tasks))
}

// RecordSpread observes the spread of a produced partition.
func (p *PrometheusCollector) RecordSpread(strategy string, difference float64) {
	p.ensureRegistered()
	p.spread.WithLabelValues(strategy).Observe(difference)
}

// SearchMetrics implementation

// RecordSearchLeaves observes the number of scored assignments.
func (p *PrometheusCollector) RecordSearchLeaves(strategy string, leaves int64) {
	p.ensureRegistered()
	p.searchLeaves.WithLabelValues(strategy).Observe(float64(leaves))
}

// CacheMetrics implementation

// RecordCacheResult counts a cache hit or miss.
func (p *PrometheusCollector) RecordCacheResult(hit bool) {
	p.ensureRegistered()
	if hit {
		p.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		p.cacheLookups.WithLabelValues("miss").Inc()
	}
}

// ServiceMetrics implementation

// RecordRequest counts a handled service request.
func (p *PrometheusCollector) RecordRequest(result string) {
	p.ensureRegistered()
	p.requests.WithLabelValues(result).Inc()
}

// RecordPublish counts a KV write outcome.
func (p *PrometheusCollector) RecordPublish(success bool) {
	p.ensureRegistered()
	p.publish.WithLabelValues(outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}

	return "failure"
}
