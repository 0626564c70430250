// Package logging provides structured logging for validation runs.
//
// It wraps log/slog with JSON, text and console formats and carries the
// run fields (run_id, model, version) through context.Context:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithModel(ctx, "models/sales.yaml")
//	logger.InfoContext(ctx, "validation complete", "errors", 3)
//
// Slog returns the underlying *slog.Logger for packages that take one, such
// as the validator:
//
//	v, err := validator.New(validator.WithLogger(logger.Slog()))
package logging
