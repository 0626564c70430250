package edm

import (
	"reflect"
	"strings"
)

// IsNil reports whether v is nil or an interface holding a nil pointer,
// map, slice or func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// FullName returns the namespace-qualified name of a schema element.
func FullName(e SchemaElement) string {
	if IsNil(e) {
		return ""
	}
	if e.Namespace() == "" {
		return e.Name()
	}
	return e.Namespace() + "." + e.Name()
}

// TypeName renders a type for messages.
func TypeName(t Type) string {
	if IsNil(t) {
		return "<unknown>"
	}
	switch tt := t.(type) {
	case SchemaType:
		return FullName(tt)
	case CollectionType:
		return "Collection(" + TypeReferenceName(tt.ElementType()) + ")"
	case EntityReferenceType:
		if IsNil(tt.EntityType()) {
			return "Ref(<unknown>)"
		}
		return "Ref(" + FullName(tt.EntityType()) + ")"
	}
	return t.TypeKind().String()
}

// TypeReferenceName renders a type reference for messages.
func TypeReferenceName(tr TypeReference) string {
	if IsNil(tr) {
		return "<unknown>"
	}
	return TypeName(tr.Definition())
}

// BaseTypes returns the base type chain of t, nearest first. The walk stops
// at the first repeated type.
func BaseTypes(t StructuredType) []StructuredType {
	var chain []StructuredType
	seen := map[StructuredType]bool{t: true}
	for b := t.BaseType(); !IsNil(b) && !seen[b]; b = b.BaseType() {
		seen[b] = true
		chain = append(chain, b)
	}
	return chain
}

// AllProperties returns the properties of t including inherited ones, base
// type properties first.
func AllProperties(t StructuredType) []Property {
	if IsNil(t) {
		return nil
	}
	chain := BaseTypes(t)
	var props []Property
	for i := len(chain) - 1; i >= 0; i-- {
		props = append(props, chain[i].DeclaredProperties()...)
	}
	return append(props, t.DeclaredProperties()...)
}

// FindProperty looks up a property of t, including inherited ones.
func FindProperty(t StructuredType, name string) Property {
	props := AllProperties(t)
	for i := len(props) - 1; i >= 0; i-- {
		if !IsNil(props[i]) && props[i].Name() == name {
			return props[i]
		}
	}
	return nil
}

// Key returns the key of t, which may be declared on a base type.
func Key(t EntityType) []StructuralProperty {
	if IsNil(t) {
		return nil
	}
	if k := t.DeclaredKey(); len(k) > 0 {
		return k
	}
	for _, b := range BaseTypes(t) {
		if et, ok := b.(EntityType); ok && len(et.DeclaredKey()) > 0 {
			return et.DeclaredKey()
		}
	}
	return nil
}

// InheritsFrom reports whether t derives, directly or indirectly, from base.
func InheritsFrom(t StructuredType, base StructuredType) bool {
	if IsNil(t) || IsNil(base) {
		return false
	}
	for _, b := range BaseTypes(t) {
		if b == base {
			return true
		}
	}
	return false
}

// PrimitiveKindOf returns the primitive kind of a reference, looking through
// type definitions. It returns PrimitiveNone for non-primitive references.
func PrimitiveKindOf(tr TypeReference) PrimitiveTypeKind {
	if IsNil(tr) {
		return PrimitiveNone
	}
	return PrimitiveKindOfType(tr.Definition())
}

// PrimitiveKindOfType is PrimitiveKindOf for a type definition.
func PrimitiveKindOfType(t Type) PrimitiveTypeKind {
	if IsNil(t) {
		return PrimitiveNone
	}
	switch tt := t.(type) {
	case PrimitiveType:
		return tt.PrimitiveKind()
	case TypeDefinition:
		if t.TypeKind() == TypeKindTypeDefinition && !IsNil(tt.UnderlyingType()) {
			return tt.UnderlyingType().PrimitiveKind()
		}
	}
	return PrimitiveNone
}

// IsCollection reports whether tr refers to a collection type.
func IsCollection(tr TypeReference) bool {
	if IsNil(tr) || IsNil(tr.Definition()) {
		return false
	}
	_, ok := tr.Definition().(CollectionType)
	return ok && tr.Definition().TypeKind() == TypeKindCollection
}

// EntityTypeOf returns the entity type referenced by tr directly or as the
// element type of a collection, and whether tr is a collection.
func EntityTypeOf(tr TypeReference) (EntityType, bool) {
	if IsNil(tr) || IsNil(tr.Definition()) {
		return nil, false
	}
	switch d := tr.Definition().(type) {
	case EntityType:
		if d.TypeKind() == TypeKindEntity {
			return d, false
		}
	case CollectionType:
		if et, _ := EntityTypeOf(d.ElementType()); et != nil {
			return et, true
		}
	}
	return nil, false
}

// StructuredTypeOf returns the structured definition of tr, if any.
func StructuredTypeOf(tr TypeReference) StructuredType {
	if IsNil(tr) || IsNil(tr.Definition()) {
		return nil
	}
	st, ok := tr.Definition().(StructuredType)
	if !ok {
		return nil
	}
	return st
}

// IsScalar reports whether tr refers to a primitive, enum or type
// definition. Only scalar properties may be part of a key.
func IsScalar(tr TypeReference) bool {
	if IsNil(tr) || IsNil(tr.Definition()) {
		return false
	}
	switch tr.Definition().TypeKind() {
	case TypeKindPrimitive, TypeKindEnum, TypeKindTypeDefinition:
		return true
	}
	return false
}

// SplitQualifiedName splits "NS.Sub.Name" into ("NS.Sub", "Name").
func SplitQualifiedName(name string) (string, string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}
