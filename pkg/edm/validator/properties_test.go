package validator

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

// TestValidatorProperties checks the orchestration guarantees over
// generated models.
func TestValidatorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	v := newTestValidator(t)

	properties.Property("valid iff no errors, one key error per keyless type", prop.ForAll(
		func(keyed []bool) bool {
			model := memory.NewModel()
			missing := 0
			for i, hasKey := range keyed {
				name := fmt.Sprintf("T%d", i)
				if hasKey {
					model.AddElement(keyedEntity(name))
					continue
				}
				missing++
				model.AddElement(memory.NewEntityType(ns, name, nil, false, false))
			}
			valid, errs := v.Validate(model)
			return valid == (len(errs) == 0) &&
				valid == (missing == 0) &&
				countCode(errs, edmErrors.KeyMissingOnEntityType) == missing
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("a base type cycle of any length reports exactly one error", prop.ForAll(
		func(n int) bool {
			types := make([]*memory.EntityType, n)
			model := memory.NewModel()
			for i := range n {
				types[i] = keyedEntity(fmt.Sprintf("C%d", i))
				model.AddElement(types[i])
			}
			for i := range n {
				types[i].SetBaseType(types[(i+1)%n])
			}
			valid, errs := v.Validate(model)
			return !valid && len(errs) == 1 && errs[0].Code == edmErrors.InterfaceCriticalCycleInTypeHierarchy
		},
		gen.IntRange(1, 8),
	))

	properties.Property("referenced types outside the model are swept once each", prop.ForAll(
		func(n int) bool {
			chain := make([]*memory.EntityType, n)
			for i := range n {
				chain[i] = keyedEntity(fmt.Sprintf("R%d", i))
			}
			for i := 0; i+1 < n; i++ {
				chain[i].AddNavigationProperty(memory.NavigationPropertyInfo{
					Name: "Next", Target: chain[i+1], Nullable: true,
				})
			}
			root := keyedEntity("Root")
			for range 2 {
				root.AddNavigationProperty(memory.NavigationPropertyInfo{
					Name: fmt.Sprintf("Link%d", len(root.DeclaredProperties())), Target: chain[0], Nullable: true,
				})
			}
			model := memory.NewModel()
			model.AddElement(root)

			result := v.ValidateStructure(model)
			if len(result.Errors) != 0 || len(result.Dangling) != n {
				return false
			}
			for i, el := range result.Dangling {
				if el != edm.Element(chain[i]) || contains(result.Visited, el) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 6),
	))

	properties.Property("validation is deterministic", prop.ForAll(
		func(keyed []bool) bool {
			model, customer, _ := customersModel()
			for i, hasKey := range keyed {
				if hasKey {
					customer.AddStructuralProperty(fmt.Sprintf("P%d", i), memory.NewPrimitiveReference(edm.PrimitiveInt64, true))
					continue
				}
				model.AddElement(memory.NewEntityType(ns, fmt.Sprintf("K%d", i), nil, false, false))
			}
			_, first := v.Validate(model)
			_, second := v.Validate(model)
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i].Code != second[i].Code || first[i].Message != second[i].Message {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
