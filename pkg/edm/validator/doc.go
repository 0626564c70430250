// Package validator validates EDM models.
//
// Validation runs in two passes:
//
// 1. Structural Validation: walks the object graph from the model and checks
// the invariants every node must satisfy for the capabilities it exposes
// (required values, kind discriminators, base type cycles). Elements the
// model only references are validated once by a separate sweep.
//
// 2. Semantic Validation: runs the rules of a RuleSet on every node that
// passed the structural checks. It is skipped entirely when any structural
// error is interface-critical.
//
// # Basic Usage
//
//	v, err := validator.New(validator.WithVersion(edm.Version4_01))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	valid, errs := v.Validate(model)
//	if !valid {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
//
// # Custom Rules
//
// Rules are bound to a capability interface and run on every node that
// implements it:
//
//	noLowercase := validator.NewRule("EntityTypeNameIsCapitalized",
//	    func(ctx *validator.Context, t edm.EntityType) {
//	        if !unicode.IsUpper([]rune(t.Name())[0]) {
//	            ctx.AddError(t.Location(), edmErrors.InvalidName, "entity type names must be capitalized")
//	        }
//	    })
//	rules := validator.MustRuleSet(validator.DefaultRuleSet(), noLowercase)
//	valid, errs := validator.Validate(model, rules)
//
// # Concurrency
//
// A Validator and a RuleSet may be shared between goroutines. The table of
// structural checks per concrete node type is computed once per process.
// ValidateAll validates several models with bounded parallelism.
package validator
