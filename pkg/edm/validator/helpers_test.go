package validator

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

const ns = "Sales"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestValidator(t *testing.T, opts ...Option) *Validator {
	t.Helper()
	v, err := New(append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return v
}

// keyedEntity creates an entity type with a non-nullable Int32 key "ID".
func keyedEntity(name string) *memory.EntityType {
	t := memory.NewEntityType(ns, name, nil, false, false)
	id := t.AddStructuralProperty("ID", memory.NewPrimitiveReference(edm.PrimitiveInt32, false))
	t.AddKeys(id)
	return t
}

// customersModel is a small valid model: Customer, Order and a container
// exposing both.
func customersModel() (*memory.Model, *memory.EntityType, *memory.EntityType) {
	customer := keyedEntity("Customer")
	customer.AddStructuralProperty("Name", memory.NewPrimitiveReference(edm.PrimitiveString, true))

	order := keyedEntity("Order")
	order.AddStructuralProperty("Total", memory.NewPrimitiveReference(edm.PrimitiveDecimal, false).WithPrecision(18).WithScale(2))

	orders := customer.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "Orders", Target: order, Collection: true})
	placedBy := order.AddNavigationProperty(memory.NavigationPropertyInfo{Name: "Customer", Target: customer, Nullable: true})
	memory.Pair(orders, placedBy)

	container := memory.NewEntityContainer(ns, "Default")
	customers := container.AddEntitySet("Customers", customer)
	ordersSet := container.AddEntitySet("Orders", order)
	customers.AddBinding(orders, "", ordersSet)
	ordersSet.AddBinding(placedBy, "", customers)

	model := memory.NewModel()
	model.AddElement(customer, order, container)
	return model, customer, order
}

func codes(errs []*edmErrors.EdmError) []edmErrors.ErrorCode {
	out := make([]edmErrors.ErrorCode, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func countCode(errs []*edmErrors.EdmError, code edmErrors.ErrorCode) int {
	n := 0
	for _, e := range errs {
		if e.Code == code {
			n++
		}
	}
	return n
}

func contains(nodes []edm.Element, n edm.Element) bool {
	for _, e := range nodes {
		if e == n {
			return true
		}
	}
	return false
}
