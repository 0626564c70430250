package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// element carries the source location shared by every node.
type element struct {
	loc edmErrors.Location
}

func (e *element) Location() edmErrors.Location { return e.loc }

// SetLocation records where the element was declared.
func (e *element) SetLocation(loc edmErrors.Location) { e.loc = loc }

// Locatable is implemented by every node of this package.
type Locatable interface {
	SetLocation(loc edmErrors.Location)
}

type named struct {
	element
	name string
}

func (n *named) Name() string { return n.name }

type schemaNamed struct {
	named
	namespace string
}

func (s *schemaNamed) Namespace() string { return s.namespace }

// orNil turns an interface holding a nil pointer into a nil interface.
func orNil[T any](v T) T {
	if edm.IsNil(v) {
		var zero T
		return zero
	}
	return v
}
