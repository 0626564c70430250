package validator

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

func TestValidateStructure_VisitsEachNodeOnce(t *testing.T) {
	model, customer, _ := customersModel()
	shared := memory.NewPrimitiveReference(edm.PrimitiveString, true)
	customer.AddStructuralProperty("Email", shared)
	customer.AddStructuralProperty("Phone", shared)

	result := newTestValidator(t).ValidateStructure(model)

	require.Empty(t, result.Errors)
	require.NotEmpty(t, result.Visited)
	assert.Same(t, model, result.Visited[0], "the model is visited first")

	seen := make(map[edm.Element]bool)
	for _, n := range result.Visited {
		assert.False(t, seen[n], "%T visited twice", n)
		seen[n] = true
	}
	assert.True(t, seen[shared])
	assert.True(t, seen[customer])
	assert.Empty(t, result.Dangling)
}

func TestValidateStructure_PreOrder(t *testing.T) {
	customer := keyedEntity("Customer")
	name := customer.AddStructuralProperty("Name", memory.NewPrimitiveReference(edm.PrimitiveString, true))
	container := memory.NewEntityContainer(ns, "Default")
	model := memory.NewModel()
	model.AddElement(customer, container)

	result := newTestValidator(t).ValidateStructure(model)

	index := func(n edm.Element) int {
		for i, v := range result.Visited {
			if v == n {
				return i
			}
		}
		return -1
	}
	assert.Less(t, index(customer), index(name))
	assert.Less(t, index(name), index(container), "owned children are visited before later siblings")
}

func TestValidateStructure_DanglingReference(t *testing.T) {
	order := keyedEntity("Order")
	customer := keyedEntity("Customer")
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "LastOrder", Target: order, Nullable: true})
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "FirstOrder", Target: order, Nullable: true})
	model := memory.NewModel()
	model.AddElement(customer)

	result := newTestValidator(t).ValidateStructure(model)

	assert.Empty(t, result.Errors)
	assert.False(t, contains(result.Visited, order))
	assert.Equal(t, []edm.Element{order}, result.Dangling)
}

func TestValidateStructure_DanglingReferenceValidatedOnce(t *testing.T) {
	unnamed := keyedEntity("")
	customer := keyedEntity("Customer")
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "A", Target: unnamed, Nullable: true})
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "B", Target: unnamed, Nullable: true})
	model := memory.NewModel()
	model.AddElement(customer)

	result := newTestValidator(t).ValidateStructure(model)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, edmErrors.InterfaceCriticalPropertyValueMustNotBeNull, result.Errors[0].Code)
	assert.True(t, result.HasCritical())
	assert.True(t, result.IsBad(unnamed))
	assert.False(t, result.IsBad(customer))
	assert.Len(t, result.Bad, 1)
}

func TestValidateStructure_TransitiveDanglingReferences(t *testing.T) {
	// Customer -> Order (not in the model) -> Invoice (not in the model)
	invoice := keyedEntity("Invoice")
	order := keyedEntity("Order")
	order.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "Invoice", Target: invoice, Nullable: true})
	customer := keyedEntity("Customer")
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "Order", Target: order, Nullable: true})
	model := memory.NewModel()
	model.AddElement(customer)

	result := newTestValidator(t).ValidateStructure(model)

	assert.Equal(t, []edm.Element{order, invoice}, result.Dangling)
}

func TestValidateStructure_NilCollectionElement(t *testing.T) {
	model := memory.NewModel()
	model.AddElement(keyedEntity("Customer"), nil)

	result := newTestValidator(t).ValidateStructure(model)

	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.InterfaceCriticalEnumerableMustNotHaveNullElements}, codes(result.Errors))
	assert.True(t, result.IsBad(model))
	assert.Len(t, result.Visited, 1, "children of a bad node are not walked")
}

func TestValidateStructure_UndefinedOnDelete(t *testing.T) {
	order := keyedEntity("Order")
	customer := keyedEntity("Customer")
	customer.AddNavigationProperty(memory.NavigationPropertyInfo{
		Name:     "Orders",
		Target:   order,
		OnDelete: edm.OnDeleteAction(99),
	})
	model := memory.NewModel()
	model.AddElement(customer, order)

	result := newTestValidator(t).ValidateStructure(model)

	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.InterfaceCriticalEnumPropertyValueOutOfRange}, codes(result.Errors))
}

func TestValidateStructure_OwnedPartnerOfDanglingTypeValidatedOnce(t *testing.T) {
	// Inside is in the model, Outside is only referenced. The partner In
	// is owned by Outside but reached from Inside first.
	outside := keyedEntity("Outside")
	inside := keyedEntity("Inside")
	out := inside.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "Out", Target: outside, Nullable: true})
	in := outside.AddNavigationProperty(memory.NavigationPropertyInfo{
		Name:     "In",
		Target:   inside,
		Nullable: true,
		OnDelete: edm.OnDeleteAction(99),
	})
	memory.Pair(out, in)
	model := memory.NewModel()
	model.AddElement(inside)

	result := newTestValidator(t).ValidateStructure(model)

	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.InterfaceCriticalEnumPropertyValueOutOfRange}, codes(result.Errors))
	assert.True(t, result.IsBad(in))
	assert.Equal(t, []edm.Element{outside}, result.Dangling)
}

func TestDispatch_ChecksForEntityType(t *testing.T) {
	checks := structuralDispatch.checksFor(reflect.TypeOf(&memory.EntityType{}))

	var names []string
	for _, c := range checks {
		names = append(names, c.name)
	}
	assert.Equal(t, []string{"NamedElement", "SchemaElement", "Type", "StructuredType", "EntityType"}, names)
	assert.Same(t, &checks[0], &structuralDispatch.checksFor(reflect.TypeOf(&memory.EntityType{}))[0],
		"the cached slice is reused")
}

func TestNodeSet(t *testing.T) {
	a, b, c := keyedEntity("A"), keyedEntity("B"), keyedEntity("C")
	s := newNodeSet()

	s.add(a)
	s.add(b)
	s.add(a)
	s.add(c)
	assert.Equal(t, 3, s.len())
	assert.Equal(t, []edm.Element{a, b, c}, s.list())

	s.remove(b)
	assert.False(t, s.has(b))
	assert.Equal(t, []edm.Element{a, c}, s.list())

	var empty *nodeSet
	assert.False(t, empty.has(a))
}
