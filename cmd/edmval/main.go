// edmval validates Entity Data Models described in YAML.
//
// It runs the structural and semantic validation passes over a model and
// reports every error with its code, location and message:
//   - One-shot validation of one model or many independent models
//   - Watch mode re-validating on file changes, with Prometheus metrics
//   - Optional persistence of validation reports in SQLite
//   - Message catalog overrides, hot-reloaded in watch mode
//
// Usage:
//
//	# Validate a model split over several files
//	edmval validate -f common.yaml -f sales.yaml
//
//	# Validate every model in a directory independently, as JSON
//	edmval validate --dir models/ --each --format json
//
//	# Re-validate on change and serve metrics
//	edmval watch -f sales.yaml --metrics-addr 127.0.0.1:9090
//
//	# Show stored validation reports
//	edmval history --invalid
//
//	# List error codes
//	edmval codes --critical
package main

func main() {
	Execute()
}
