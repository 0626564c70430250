// Package telemetry groups the observability packages of edmval.
//
//   - logging: structured logging on log/slog with run, model and version
//     context fields
//   - metrics: Prometheus metrics fed by the validator's Observer hook
//   - health: liveness and readiness endpoints for watch mode
package telemetry
