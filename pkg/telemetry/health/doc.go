// Package health provides liveness and readiness endpoints for the
// long-running watch mode.
//
// Endpoints:
//
//   - /health: liveness, the process is running
//   - /ready: readiness, every registered check passes (503 otherwise)
//   - /version: build information
//
// The watch command registers a "model" check, failing while the watched
// model cannot be loaded, and a "reports" check pinging the report store:
//
//	checker := health.New(2 * time.Second)
//	modelState := health.NewLastError()
//	checker.RegisterCheck("model", modelState.Check)
//	health.Register(mux, checker, Version, GitCommit, BuildDate)
package health
