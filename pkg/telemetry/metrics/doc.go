// Package metrics exposes validation metrics to Prometheus.
//
// Collector implements validator.Observer; every run updates run counts by
// result, error counts by code and pass, the duration histogram, the
// number of visited elements and the structural dispatch cache size:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	v, err := validator.New(validator.WithObserver(collector))
//
//	mux := http.NewServeMux()
//	mux.Handle("/metrics", collector.Handler())
//
// Error codes are bounded by the code catalog; any label beyond it is
// reported as "other".
package metrics
