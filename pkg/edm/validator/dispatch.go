package validator

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// checkResult collects what one capability check found on a node.
type checkResult struct {
	catalog    edmErrors.Catalog
	errors     []*edmErrors.EdmError
	followups  []edm.Element
	references []edm.Element

	// cycles holds the types of base-type cycles already reported in this
	// run. A node whose cycle is in it is abandoned without a new error.
	cycles  *nodeSet
	abandon bool
}

func (r *checkResult) report(loc edmErrors.Location, code edmErrors.ErrorCode, args ...any) {
	r.errors = append(r.errors, edmErrors.New(loc, code, r.catalog.Message(code, args...)))
}

// follow queues an owned child. Values that are not elements are ignored.
func (r *checkResult) follow(child any) {
	if el, ok := child.(edm.Element); ok && !edm.IsNil(el) {
		r.followups = append(r.followups, el)
	}
}

// reference records a child owned elsewhere in the graph.
func (r *checkResult) reference(child any) {
	if el, ok := child.(edm.Element); ok && !edm.IsNil(el) {
		r.references = append(r.references, el)
	}
}

// capabilityCheck is the structural check for one capability.
type capabilityCheck struct {
	name       string
	capability reflect.Type
	run        func(node edm.Element, r *checkResult)
}

// structural binds a check function to the capability T.
func structural[T edm.Element](name string, fn func(node T, r *checkResult)) capabilityCheck {
	return capabilityCheck{
		name:       name,
		capability: reflect.TypeFor[T](),
		run: func(node edm.Element, r *checkResult) {
			fn(any(node).(T), r)
		},
	}
}

// dispatchEntry is initialised exactly once per concrete node type.
type dispatchEntry struct {
	once   sync.Once
	checks []capabilityCheck
}

// dispatchCache maps concrete node types to the structural checks they
// need. It lives for the whole process and is shared by all validations.
type dispatchCache struct {
	entries sync.Map // reflect.Type -> *dispatchEntry
	size    atomic.Int64
}

var structuralDispatch = &dispatchCache{}

// checksFor returns the checks whose capability t implements, in table
// order.
func (c *dispatchCache) checksFor(t reflect.Type) []capabilityCheck {
	v, ok := c.entries.Load(t)
	if !ok {
		v, _ = c.entries.LoadOrStore(t, &dispatchEntry{})
	}
	entry := v.(*dispatchEntry)
	entry.once.Do(func() {
		for _, check := range structuralChecks {
			if t.Implements(check.capability) {
				entry.checks = append(entry.checks, check)
			}
		}
		c.size.Add(1)
	})
	return entry.checks
}

// DispatchCacheSize returns the number of node types the structural
// dispatch cache holds.
func DispatchCacheSize() int {
	return int(structuralDispatch.size.Load())
}
