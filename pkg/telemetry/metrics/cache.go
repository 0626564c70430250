package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/OData/odata.net-sub135/pkg/config"
)

// CacheMetrics tracks validator caches and reloaded inputs.
//
// Metrics:
//   - edmval_validator_dispatch_cache_entries: node types in the structural
//     dispatch cache
//   - edmval_validator_reloads_total: reloads by kind and result
type CacheMetrics struct {
	dispatchEntries prometheus.Gauge
	reloadsTotal    *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		dispatchEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "dispatch_cache_entries",
				Help:      "Number of node types in the structural dispatch cache",
			},
		),

		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of reloads of watched files",
			},
			[]string{"kind", "result"},
		),
	}

	registry.MustRegister(cm.dispatchEntries, cm.reloadsTotal)
	return cm
}

// UpdateDispatchCacheSize sets the dispatch cache size.
func (cm *CacheMetrics) UpdateDispatchCacheSize(size int) {
	cm.dispatchEntries.Set(float64(size))
}

// RecordReload counts a reload of kind.
func (cm *CacheMetrics) RecordReload(kind string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	cm.reloadsTotal.WithLabelValues(kind, result).Inc()
}
