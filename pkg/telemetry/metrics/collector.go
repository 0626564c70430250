package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/OData/odata.net-sub135/pkg/config"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
)

// otherCode aggregates error codes beyond the cardinality limit.
const otherCode = "other"

// Collector owns the Prometheus metrics of edmval. It implements
// validator.Observer, so it can be passed to validator.WithObserver.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	validationMetrics *ValidationMetrics
	cacheMetrics      *CacheMetrics

	cardinalityLimiter *CardinalityLimiter
}

var _ validator.Observer = (*Collector)(nil)

// NewCollector creates a collector and registers its metrics with registry.
// A nil registry gets a fresh one.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		validationMetrics:  NewValidationMetrics(cfg, registry),
		cacheMetrics:       NewCacheMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(len(edmErrors.Codes()) + 16),
	}
}

// ObserveValidation records one validation run.
func (c *Collector) ObserveValidation(stats validator.Stats) {
	if !c.config.Enabled {
		return
	}

	result := "valid"
	switch {
	case stats.Critical:
		result = "critical"
	case len(stats.Errors) > 0:
		result = "invalid"
	}
	c.validationMetrics.RecordRun(result, stats)

	for _, e := range stats.Errors {
		code := e.Code.String()
		if !c.cardinalityLimiter.Allow(code) {
			code = otherCode
		}
		c.validationMetrics.RecordError(code)
	}

	c.cacheMetrics.UpdateDispatchCacheSize(validator.DispatchCacheSize())
}

// RecordReload records a reload of watched input. kind is "model" or
// "messages".
func (c *Collector) RecordReload(kind string, err error) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.RecordReload(kind, err == nil)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter caps the number of distinct label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter admitting maxCardinality values.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether value is already known or still fits the limit.
func (cl *CardinalityLimiter) Allow(value string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[value]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[value]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}
	cl.current[value] = struct{}{}
	return true
}

// Count returns the number of admitted values.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
