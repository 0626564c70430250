package validator

import (
	"reflect"
	"slices"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// walker runs the structural checks over the part of a graph reachable
// through ownership edges.
type walker struct {
	catalog edmErrors.Catalog

	// model supplies direct value annotations. It is nil for walkers that
	// do not validate annotations.
	model edm.Model

	// excluded nodes were already validated by another walker. They are
	// neither walked again nor recorded as dangling.
	excluded *nodeSet

	cycles   *nodeSet
	visited  *nodeSet
	bad      *nodeSet
	dangling *nodeSet
	errors   []*edmErrors.EdmError
}

func newWalker(catalog edmErrors.Catalog, model edm.Model, excluded, cycles *nodeSet) *walker {
	return &walker{
		catalog:  catalog,
		model:    model,
		excluded: excluded,
		cycles:   cycles,
		visited:  newNodeSet(),
		bad:      newNodeSet(),
		dangling: newNodeSet(),
	}
}

// walk validates root and everything it owns. Nodes are processed in
// pre-order with an explicit stack so deep ownership chains cannot exhaust
// the goroutine stack.
func (w *walker) walk(root edm.Element) {
	stack := []edm.Element{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if edm.IsNil(n) || edm.IsBuiltin(n) || w.visited.has(n) || w.excluded.has(n) {
			continue
		}
		w.visited.add(n)
		w.dangling.remove(n)

		if c, ok := n.(edm.Checkable); ok {
			if errs := c.Errors(); len(errs) > 0 {
				w.errors = append(w.errors, errs...)
				w.bad.add(n)
				continue
			}
		}

		r := &checkResult{catalog: w.catalog, cycles: w.cycles}
		for _, check := range structuralDispatch.checksFor(reflect.TypeOf(n)) {
			check.run(n, r)
		}
		if len(r.errors) > 0 || r.abandon {
			w.errors = append(w.errors, r.errors...)
			w.bad.add(n)
			continue
		}

		for _, ref := range r.references {
			if edm.IsBuiltin(ref) || w.visited.has(ref) || w.excluded.has(ref) {
				continue
			}
			w.dangling.add(ref)
		}

		children := r.followups
		if w.model != nil {
			for _, a := range w.model.DirectValueAnnotations(n) {
				children = append(children, a)
			}
		}
		// Annotations go last so they are popped, and validated, before
		// the owned children.
		slices.Reverse(children)
		stack = append(stack, children...)
	}
}

// StructuralResult is the outcome of the structural pass over a model and
// the elements it references.
type StructuralResult struct {
	Errors []*edmErrors.EdmError

	// Visited lists the nodes reached from the root, in visit order.
	Visited []edm.Element

	// Bad lists nodes with structural errors, from either pass.
	Bad []edm.Element

	// Dangling lists the referenced nodes that were not reachable from the
	// root and were validated by the reference sweep.
	Dangling []edm.Element

	isBad func(edm.Element) bool
}

// IsBad reports whether n failed structural validation.
func (s *StructuralResult) IsBad(n edm.Element) bool {
	if s.isBad == nil {
		return false
	}
	return s.isBad(n)
}

// HasCritical reports whether any structural error is interface-critical.
func (s *StructuralResult) HasCritical() bool {
	list := edmErrors.ErrorList{Errors: s.Errors}
	return list.HasCriticalErrors()
}

// validateStructure walks the model and then sweeps the dangling
// references with a second walker until no new ones appear.
func validateStructure(model edm.Model, catalog edmErrors.Catalog) *StructuralResult {
	cycles := newNodeSet()
	root := newWalker(catalog, model, nil, cycles)
	root.walk(model)

	refs := newWalker(catalog, nil, root.visited, cycles)
	var swept []edm.Element
	for pending := root.dangling.list(); len(pending) > 0; pending = refs.dangling.list() {
		for _, n := range pending {
			refs.dangling.remove(n)
			if !refs.visited.has(n) {
				swept = append(swept, n)
			}
			refs.walk(n)
		}
	}

	errs := make([]*edmErrors.EdmError, 0, len(root.errors)+len(refs.errors))
	errs = append(errs, root.errors...)
	errs = append(errs, refs.errors...)

	return &StructuralResult{
		Errors:   errs,
		Visited:  root.visited.list(),
		Bad:      append(root.bad.list(), refs.bad.list()...),
		Dangling: swept,
		isBad: func(n edm.Element) bool {
			return root.bad.has(n) || refs.bad.has(n)
		},
	}
}
