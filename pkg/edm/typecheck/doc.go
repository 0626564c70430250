// Package typecheck decides whether annotation expressions and values are
// assignable to an asserted type.
//
// An expression that declares its own type (a typed constant, a record or
// collection with a declared type, a cast) is checked by comparing that
// type with the asserted one: nullability first, then equivalence when the
// match must be exact, otherwise primitive promotion (PromotesTo) or
// inheritance (IsOrInheritsFrom). Any other expression is checked by its
// shape: integer literals against the range of the asserted integral type,
// strings and binaries against the max length facet, records property by
// property, collections element by element, paths by walking the binding
// context.
//
// The checker never panics on malformed input. A missing asserted type, or
// one of kind None, is compatible with everything so that an already
// reported broken type does not cause cascading errors.
package typecheck
