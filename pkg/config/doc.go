// Package config loads edmval configuration.
//
// Configuration comes from an optional YAML file, then EDMVAL_* environment
// variables, then defaults for anything left unset:
//
//	validation:
//	  version: "4.01"
//	  message_catalog: messages.yaml
//	  max_concurrency: 8
//	telemetry:
//	  logging: {level: debug, format: json}
//	  metrics: {enabled: true, listen_address: "127.0.0.1:9090"}
//	reports:
//	  enabled: true
//	  driver: sqlite        # pure Go; "sqlite3" uses cgo
//	  path: data/reports.db
//	  retention_days: 14
//	  prune_schedule: "0 3 * * *"
//	watch:
//	  debounce: 250ms
//
// Environment variables are named after the YAML path, upper-cased:
// EDMVAL_VALIDATION_VERSION, EDMVAL_REPORTS_DRIVER, EDMVAL_WATCH_DEBOUNCE.
//
// Validate reports every invalid field at once as a ValidationError.
package config
