package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
)

// ValidationMetrics tracks validation runs.
//
// Metrics:
//   - edmval_validator_runs_total: runs by result (valid, invalid, critical)
//   - edmval_validator_errors_total: errors by code
//   - edmval_validator_pass_errors_total: errors by pass (structural, semantic)
//   - edmval_validator_duration_seconds: run duration
//   - edmval_validator_elements_visited: elements reached per run
//   - edmval_validator_bad_elements: elements marked bad in the last run
type ValidationMetrics struct {
	runsTotal       *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	passErrorsTotal *prometheus.CounterVec
	duration        prometheus.Histogram
	visited         prometheus.Histogram
	badElements     prometheus.Gauge
}

// NewValidationMetrics creates and registers validation metrics.
func NewValidationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of validation runs by result",
			},
			[]string{"result"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of validation errors by code",
			},
			[]string{"code"},
		),

		passErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "pass_errors_total",
				Help:      "Total number of validation errors by pass",
			},
			[]string{"pass"},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Validation run duration in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		visited: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "elements_visited",
				Help:      "Model elements reached by the structural pass",
				Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
			},
		),

		badElements: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "bad_elements",
				Help:      "Elements marked bad by the last validation run",
			},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.errorsTotal,
		vm.passErrorsTotal,
		vm.duration,
		vm.visited,
		vm.badElements,
	)

	return vm
}

// RecordRun records the outcome of one run.
func (vm *ValidationMetrics) RecordRun(result string, stats validator.Stats) {
	vm.runsTotal.WithLabelValues(result).Inc()
	vm.passErrorsTotal.WithLabelValues("structural").Add(float64(stats.StructuralErrors))
	vm.passErrorsTotal.WithLabelValues("semantic").Add(float64(stats.SemanticErrors))
	vm.duration.Observe(stats.Duration.Seconds())
	vm.visited.Observe(float64(stats.Visited))
	vm.badElements.Set(float64(stats.Bad))
}

// RecordError counts one error with code.
func (vm *ValidationMetrics) RecordError(code string) {
	vm.errorsTotal.WithLabelValues(code).Inc()
}
