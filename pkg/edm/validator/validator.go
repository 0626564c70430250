package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// Stats summarises one validation run.
type Stats struct {
	Visited          int
	Bad              int
	Dangling         int
	StructuralErrors int
	SemanticErrors   int
	Critical         bool
	Duration         time.Duration
	Errors           []*edmErrors.EdmError
}

// Observer is notified after every validation run.
type Observer interface {
	ObserveValidation(stats Stats)
}

// Validator is the main validator that orchestrates the structural and
// semantic passes. A Validator is safe for concurrent use.
type Validator struct {
	rules    *RuleSet
	catalog  edmErrors.Catalog
	version  edm.Version
	logger   *slog.Logger
	observer Observer
}

// Option configures a Validator.
type Option func(*Validator)

// WithRuleSet sets the semantic rules. It overrides WithVersion.
func WithRuleSet(rules *RuleSet) Option {
	return func(v *Validator) { v.rules = rules }
}

// WithVersion selects the default rule set for version.
func WithVersion(version edm.Version) Option {
	return func(v *Validator) { v.version = version }
}

// WithCatalog sets the message catalog used for structural and semantic
// errors.
func WithCatalog(catalog edmErrors.Catalog) Option {
	return func(v *Validator) { v.catalog = catalog }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) { v.logger = logger }
}

// WithObserver registers an observer for run statistics.
func WithObserver(o Observer) Option {
	return func(v *Validator) { v.observer = o }
}

// New creates a validator. Without options it validates EDM 4.0 with the
// default messages.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{version: edm.Version4_0}
	for _, opt := range opts {
		opt(v)
	}
	if v.rules == nil {
		rules, err := RuleSetForVersion(v.version)
		if err != nil {
			return nil, err
		}
		v.rules = rules
	}
	if v.catalog == nil {
		v.catalog = edmErrors.DefaultCatalog
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	v.logger = v.logger.With("component", "edm.validator")
	return v, nil
}

// Version returns the EDM version the validator targets.
func (v *Validator) Version() edm.Version {
	return v.version
}

// Validate validates model and reports whether it is valid together with
// every error found. A model is valid exactly when no error is returned,
// whatever the severity. Validate panics if model is nil.
func (v *Validator) Validate(model edm.Model) (bool, []*edmErrors.EdmError) {
	stats := v.Run(model)
	return len(stats.Errors) == 0, stats.Errors
}

// ValidateStructure runs only the structural pass.
func (v *Validator) ValidateStructure(model edm.Model) *StructuralResult {
	if edm.IsNil(model) {
		panic("validator: nil model")
	}
	return validateStructure(model, v.catalog)
}

// Run validates model and returns the run statistics, including every
// error found. Run panics if model is nil.
func (v *Validator) Run(model edm.Model) Stats {
	if edm.IsNil(model) {
		panic("validator: nil model")
	}
	start := time.Now()

	structure := validateStructure(model, v.catalog)
	stats := Stats{
		Visited:          len(structure.Visited),
		Bad:              len(structure.Bad),
		Dangling:         len(structure.Dangling),
		StructuralErrors: len(structure.Errors),
		Critical:         structure.HasCritical(),
	}
	v.logger.Debug("structural pass complete",
		"visited", stats.Visited,
		"bad", stats.Bad,
		"dangling", stats.Dangling,
		"errors", stats.StructuralErrors,
	)

	errs := structure.Errors
	if stats.Critical {
		v.logger.Info("interface-critical errors found, skipping semantic validation",
			"errors", stats.StructuralErrors)
	} else {
		ctx := newContext(model, structure.IsBad, v.catalog, v.version)
		runSemantic(v.rules, ctx, structure.Visited)
		stats.SemanticErrors = len(ctx.Errors())
		errs = append(errs, ctx.Errors()...)
		v.logger.Debug("semantic pass complete",
			"rules", v.rules.Len(),
			"errors", stats.SemanticErrors,
		)
	}

	stats.Errors = errs
	stats.Duration = time.Since(start)
	if v.observer != nil {
		v.observer.ObserveValidation(stats)
	}
	return stats
}

// Validate validates model with rules and the default messages. It panics
// if model or rules is nil.
func Validate(model edm.Model, rules *RuleSet) (bool, []*edmErrors.EdmError) {
	if rules == nil {
		panic("validator: nil rule set")
	}
	v, err := New(WithRuleSet(rules))
	if err != nil {
		panic(err)
	}
	return v.Validate(model)
}

// Result is the outcome of validating one model in a batch.
type Result struct {
	Model  edm.Model
	Valid  bool
	Errors []*edmErrors.EdmError
	Stats  Stats
}

// ValidateAll validates models with at most concurrency validations in
// flight. Results are returned in input order. Cancellation is checked
// between models only.
func (v *Validator) ValidateAll(ctx context.Context, models []edm.Model, concurrency int) ([]Result, error) {
	for i, model := range models {
		if edm.IsNil(model) {
			return nil, fmt.Errorf("model %d is nil", i)
		}
	}

	results := make([]Result, len(models))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, model := range models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats := v.Run(model)
			results[i] = Result{Model: model, Valid: len(stats.Errors) == 0, Errors: stats.Errors, Stats: stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
