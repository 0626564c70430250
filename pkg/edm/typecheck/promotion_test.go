package typecheck

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/OData/odata.net-sub135/pkg/edm"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

func TestPromotesTo(t *testing.T) {
	tests := []struct {
		from, to edm.PrimitiveTypeKind
		want     bool
	}{
		{edm.PrimitiveByte, edm.PrimitiveInt32, true},
		{edm.PrimitiveInt32, edm.PrimitiveByte, false},
		{edm.PrimitiveSByte, edm.PrimitiveInt16, true},
		{edm.PrimitiveByte, edm.PrimitiveSByte, false},
		{edm.PrimitiveInt16, edm.PrimitiveInt64, true},
		{edm.PrimitiveInt64, edm.PrimitiveInt32, false},
		{edm.PrimitiveSingle, edm.PrimitiveDouble, true},
		{edm.PrimitiveDouble, edm.PrimitiveSingle, false},
		{edm.PrimitiveInt32, edm.PrimitiveDouble, false},
		{edm.PrimitiveInt32, edm.PrimitiveDecimal, false},
		{edm.PrimitiveGeographyPoint, edm.PrimitiveGeography, true},
		{edm.PrimitiveGeographyPoint, edm.PrimitiveGeometry, false},
		{edm.PrimitiveGeometryMultiPolygon, edm.PrimitiveGeometry, true},
		{edm.PrimitiveGeography, edm.PrimitiveGeographyPoint, false},
		{edm.PrimitiveString, edm.PrimitiveString, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, PromotesTo(tt.from, tt.to))
		})
	}
}

func TestIsEquivalentTo(t *testing.T) {
	byteRef := memory.NewPrimitiveReference(edm.PrimitiveByte, false)
	a := memory.NewCollectionType(byteRef)
	b := memory.NewCollectionType(memory.NewPrimitiveReference(edm.PrimitiveByte, false))
	c := memory.NewCollectionType(memory.NewPrimitiveReference(edm.PrimitiveByte, true))

	assert.True(t, IsEquivalentTo(a, b))
	assert.False(t, IsEquivalentTo(a, c))

	e1 := memory.NewEntityType("NS", "E", nil, false, false)
	e2 := memory.NewEntityType("NS", "E", nil, false, false)
	assert.True(t, IsEquivalentTo(e1, e1))
	assert.False(t, IsEquivalentTo(e1, e2), "named types compare by identity")
	assert.False(t, IsEquivalentTo(nil, e1))
}

func TestIsOrInheritsFrom(t *testing.T) {
	base := memory.NewEntityType("NS", "Base", nil, true, false)
	derived := memory.NewEntityType("NS", "Derived", base, false, false)

	assert.True(t, IsOrInheritsFrom(derived, base))
	assert.False(t, IsOrInheritsFrom(base, derived))

	derivedColl := memory.NewCollectionType(memory.NewTypeReference(derived, false))
	baseColl := memory.NewCollectionType(memory.NewTypeReference(base, false))
	assert.True(t, IsOrInheritsFrom(derivedColl, baseColl))
	assert.False(t, IsOrInheritsFrom(baseColl, derivedColl))

	// A cyclic chain must terminate.
	x := memory.NewEntityType("NS", "X", nil, false, false)
	y := memory.NewEntityType("NS", "Y", x, false, false)
	x.SetBaseType(y)
	assert.False(t, IsOrInheritsFrom(x, base))
}

var integralKinds = []edm.PrimitiveTypeKind{
	edm.PrimitiveByte, edm.PrimitiveSByte, edm.PrimitiveInt16, edm.PrimitiveInt32, edm.PrimitiveInt64,
}

func kindRange(kind edm.PrimitiveTypeKind) (int64, int64) {
	switch kind {
	case edm.PrimitiveByte:
		return 0, math.MaxUint8
	case edm.PrimitiveSByte:
		return math.MinInt8, math.MaxInt8
	case edm.PrimitiveInt16:
		return math.MinInt16, math.MaxInt16
	case edm.PrimitiveInt32:
		return math.MinInt32, math.MaxInt32
	}
	return math.MinInt64, math.MaxInt64
}

// TestTypeCheckProperties checks the lattice and range rules over generated
// inputs.
func TestTypeCheckProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	kinds := gen.IntRange(int(edm.PrimitiveBinary), int(edm.PrimitiveGeometryMultiPoint))

	properties.Property("promotion is reflexive", prop.ForAll(
		func(k int) bool {
			return PromotesTo(edm.PrimitiveTypeKind(k), edm.PrimitiveTypeKind(k))
		},
		kinds,
	))

	properties.Property("promotion is antisymmetric", prop.ForAll(
		func(a, b int) bool {
			ka, kb := edm.PrimitiveTypeKind(a), edm.PrimitiveTypeKind(b)
			if ka == kb {
				return true
			}
			return !(PromotesTo(ka, kb) && PromotesTo(kb, ka))
		},
		kinds, kinds,
	))

	properties.Property("integer literal fits iff within asserted range", prop.ForAll(
		func(v int64, i int) bool {
			kind := integralKinds[i]
			lo, hi := kindRange(kind)
			errs := TryCast(memory.NewIntegerConstant(v), memory.NewPrimitiveReference(kind, false), nil, false)
			return (len(errs) == 0) == (v >= lo && v <= hi)
		},
		gen.Int64Range(-70000, 70000),
		gen.IntRange(0, len(integralKinds)-1),
	))

	properties.Property("nullable own type never satisfies non-nullable assertion", prop.ForAll(
		func(a, b int, exact bool) bool {
			c := memory.NewIntegerConstant(0)
			c.SetType(memory.NewPrimitiveReference(edm.PrimitiveTypeKind(a), true))
			errs := TryCast(c, memory.NewPrimitiveReference(edm.PrimitiveTypeKind(b), false), nil, exact)
			return len(errs) == 1
		},
		kinds, kinds, gen.Bool(),
	))

	properties.TestingRun(t)
}
