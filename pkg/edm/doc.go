// Package edm defines the capabilities an Entity Data Model graph exposes to
// the validator.
//
// A node is any comparable value (in practice a pointer) implementing
// Element. The capabilities a node supports are the interfaces of this
// package its dynamic type implements; a single entity type node is at once
// an Element, a NamedElement, a SchemaElement, a Type, a StructuredType and
// an EntityType. Each capability also carries a discriminator (TypeKind,
// SchemaElementKind, ExpressionKind, ...) that must agree with the other
// capabilities the node implements.
//
// The package has no validation logic. It provides the kind enums, the
// built-in primitive types (PrimitiveTypeOf, LookupPrimitiveType) and a few
// graph helpers (FullName, AllProperties, Key, InheritsFrom) that tolerate
// malformed graphs: they never loop on a cyclic base type chain.
package edm
