package typecheck

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// promotions lists, for each primitive kind, the kinds it promotes to
// besides itself.
var promotions = map[edm.PrimitiveTypeKind][]edm.PrimitiveTypeKind{
	edm.PrimitiveByte:   {edm.PrimitiveInt16, edm.PrimitiveInt32, edm.PrimitiveInt64},
	edm.PrimitiveSByte:  {edm.PrimitiveInt16, edm.PrimitiveInt32, edm.PrimitiveInt64},
	edm.PrimitiveInt16:  {edm.PrimitiveInt32, edm.PrimitiveInt64},
	edm.PrimitiveInt32:  {edm.PrimitiveInt64},
	edm.PrimitiveSingle: {edm.PrimitiveDouble},

	edm.PrimitiveGeographyPoint:           {edm.PrimitiveGeography},
	edm.PrimitiveGeographyLineString:      {edm.PrimitiveGeography},
	edm.PrimitiveGeographyPolygon:         {edm.PrimitiveGeography},
	edm.PrimitiveGeographyMultiPoint:      {edm.PrimitiveGeography},
	edm.PrimitiveGeographyMultiLineString: {edm.PrimitiveGeography},
	edm.PrimitiveGeographyMultiPolygon:    {edm.PrimitiveGeography},
	edm.PrimitiveGeographyCollection:      {edm.PrimitiveGeography},

	edm.PrimitiveGeometryPoint:           {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryLineString:      {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryPolygon:         {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryMultiPoint:      {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryMultiLineString: {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryMultiPolygon:    {edm.PrimitiveGeometry},
	edm.PrimitiveGeometryCollection:      {edm.PrimitiveGeometry},
}

// PromotesTo reports whether a value of kind from may be used where kind to
// is expected. The relation is reflexive and directional.
func PromotesTo(from, to edm.PrimitiveTypeKind) bool {
	if from == to {
		return true
	}
	for _, k := range promotions[from] {
		if k == to {
			return true
		}
	}
	return false
}

// IsEquivalentTo reports whether a and b denote the same type. Named types
// are compared by identity, primitives by kind and unnamed types
// structurally.
func IsEquivalentTo(a, b edm.Type) bool {
	if edm.IsNil(a) || edm.IsNil(b) {
		return false
	}
	if a == b {
		return true
	}
	if a.TypeKind() != b.TypeKind() {
		return false
	}
	switch at := a.(type) {
	case edm.PrimitiveType:
		bt, ok := b.(edm.PrimitiveType)
		return ok && at.PrimitiveKind() == bt.PrimitiveKind()
	case edm.CollectionType:
		bt, ok := b.(edm.CollectionType)
		return ok && IsEquivalentReference(at.ElementType(), bt.ElementType())
	case edm.EntityReferenceType:
		bt, ok := b.(edm.EntityReferenceType)
		return ok && !edm.IsNil(at.EntityType()) && at.EntityType() == bt.EntityType()
	}
	return false
}

// IsEquivalentReference reports whether two references have equivalent
// definitions and the same nullability.
func IsEquivalentReference(a, b edm.TypeReference) bool {
	if edm.IsNil(a) || edm.IsNil(b) {
		return false
	}
	return a.IsNullable() == b.IsNullable() && IsEquivalentTo(a.Definition(), b.Definition())
}

// IsOrInheritsFrom reports whether t is equivalent to other or derives from
// it. Collections and entity references compare their element types.
func IsOrInheritsFrom(t, other edm.Type) bool {
	if edm.IsNil(t) || edm.IsNil(other) {
		return false
	}
	if IsEquivalentTo(t, other) {
		return true
	}
	if t.TypeKind() != other.TypeKind() {
		return false
	}
	switch tt := t.(type) {
	case edm.StructuredType:
		ot, ok := other.(edm.StructuredType)
		return ok && edm.InheritsFrom(tt, ot)
	case edm.CollectionType:
		ot, ok := other.(edm.CollectionType)
		if !ok || edm.IsNil(tt.ElementType()) || edm.IsNil(ot.ElementType()) {
			return false
		}
		return IsOrInheritsFrom(tt.ElementType().Definition(), ot.ElementType().Definition())
	case edm.EntityReferenceType:
		ot, ok := other.(edm.EntityReferenceType)
		return ok && IsOrInheritsFrom(tt.EntityType(), ot.EntityType())
	}
	return false
}
