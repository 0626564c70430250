package typecheck

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

func prim(kind edm.PrimitiveTypeKind, nullable bool) *memory.TypeReference {
	return memory.NewPrimitiveReference(kind, nullable)
}

func codes(errs []*edmErrors.EdmError) []edmErrors.ErrorCode {
	out := make([]edmErrors.ErrorCode, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestTryCast_IntegerRange(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		kind  edm.PrimitiveTypeKind
		want  []edmErrors.ErrorCode
	}{
		{"1000 does not fit Byte", 1000, edm.PrimitiveByte, []edmErrors.ErrorCode{edmErrors.IntegerConstantValueOutOfRange}},
		{"200 fits Byte", 200, edm.PrimitiveByte, nil},
		{"200 fits Int16", 200, edm.PrimitiveInt16, nil},
		{"-1 does not fit Byte", -1, edm.PrimitiveByte, []edmErrors.ErrorCode{edmErrors.IntegerConstantValueOutOfRange}},
		{"200 does not fit SByte", 200, edm.PrimitiveSByte, []edmErrors.ErrorCode{edmErrors.IntegerConstantValueOutOfRange}},
		{"-128 fits SByte", -128, edm.PrimitiveSByte, nil},
		{"40000 does not fit Int16", 40000, edm.PrimitiveInt16, []edmErrors.ErrorCode{edmErrors.IntegerConstantValueOutOfRange}},
		{"1<<40 does not fit Int32", 1 << 40, edm.PrimitiveInt32, []edmErrors.ErrorCode{edmErrors.IntegerConstantValueOutOfRange}},
		{"1<<40 fits Int64", 1 << 40, edm.PrimitiveInt64, nil},
		{"integer is not a string", 1, edm.PrimitiveString, []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
		{"integer is not a double", 1, edm.PrimitiveDouble, []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := TryCast(memory.NewIntegerConstant(tt.value), prim(tt.kind, false), nil, false)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, codes(errs))
		})
	}
}

func TestTryCast_NullabilityCheckedFirst(t *testing.T) {
	for _, exact := range []bool{false, true} {
		c := memory.NewIntegerConstant(5)
		c.SetType(prim(edm.PrimitiveInt32, true))

		errs := TryCast(c, prim(edm.PrimitiveInt64, false), nil, exact)
		require.Len(t, errs, 1)
		assert.Equal(t, edmErrors.CannotAssertNullableTypeAsNonNullableType, errs[0].Code)
	}
}

func TestTryCast_OwnTypePromotion(t *testing.T) {
	c := memory.NewIntegerConstant(5)
	c.SetType(prim(edm.PrimitiveByte, false))

	assert.Empty(t, TryCast(c, prim(edm.PrimitiveInt32, false), nil, false))

	errs := TryCast(c, prim(edm.PrimitiveInt32, false), nil, true)
	require.Len(t, errs, 1)
	assert.Equal(t, edmErrors.ExpressionNotValidForTheAssertedType, errs[0].Code)

	wide := memory.NewIntegerConstant(5)
	wide.SetType(prim(edm.PrimitiveInt32, false))
	errs = TryCast(wide, prim(edm.PrimitiveByte, false), nil, false)
	require.Len(t, errs, 1)
	assert.Equal(t, edmErrors.ExpressionPrimitiveKindNotValidForAssertedType, errs[0].Code)
}

func TestTryCast_Constants(t *testing.T) {
	guid := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	tests := []struct {
		name string
		expr edm.Expression
		typ  edm.TypeReference
		want []edmErrors.ErrorCode
	}{
		{"string fits", memory.NewStringConstant("abc"), prim(edm.PrimitiveString, false).WithMaxLength(3), nil},
		{"string too long", memory.NewStringConstant("abcd"), prim(edm.PrimitiveString, false).WithMaxLength(3), []edmErrors.ErrorCode{edmErrors.StringConstantLengthOutOfRange}},
		{"unbounded string", memory.NewStringConstant("abcd"), prim(edm.PrimitiveString, false).WithUnboundedLength(), nil},
		{"binary too long", memory.NewBinaryConstant([]byte{1, 2, 3}), prim(edm.PrimitiveBinary, false).WithMaxLength(2), []edmErrors.ErrorCode{edmErrors.BinaryConstantLengthOutOfRange}},
		{"boolean", memory.NewBooleanConstant(true), prim(edm.PrimitiveBoolean, false), nil},
		{"boolean as string", memory.NewBooleanConstant(true), prim(edm.PrimitiveString, false), []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
		{"guid", memory.NewGuidConstant(guid), prim(edm.PrimitiveGuid, false), nil},
		{"floating as single", memory.NewFloatingConstant(1.5), prim(edm.PrimitiveSingle, false), nil},
		{"floating as double", memory.NewFloatingConstant(1.5), prim(edm.PrimitiveDouble, false), nil},
		{"floating as decimal", memory.NewFloatingConstant(1.5), prim(edm.PrimitiveDecimal, false), []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
		{"decimal", memory.NewDecimalConstant(1.5), prim(edm.PrimitiveDecimal, false), nil},
		{"date", memory.NewDateConstant(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)), prim(edm.PrimitiveDate, false), nil},
		{"duration as time of day", memory.NewDurationConstant(time.Hour), prim(edm.PrimitiveTimeOfDay, false), []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
		{"primitive as complex", memory.NewStringConstant("x"), memory.NewTypeReference(memory.NewComplexType("NS", "C", nil, false, false), false), []edmErrors.ErrorCode{edmErrors.PrimitiveConstantExpressionNotValidForNonPrimitiveType}},
		{"null as nullable", memory.NewNullExpression(), prim(edm.PrimitiveString, true), nil},
		{"null as non-nullable", memory.NewNullExpression(), prim(edm.PrimitiveString, false), []edmErrors.ErrorCode{edmErrors.NullCannotBeAssertedToBeANonNullableType}},
		{"is-type is boolean", memory.NewIsTypeExpression(memory.NewStringConstant("x"), prim(edm.PrimitiveString, false)), prim(edm.PrimitiveBoolean, false), nil},
		{"cast target checked", memory.NewCastExpression(memory.NewStringConstant("x"), prim(edm.PrimitiveInt16, false)), prim(edm.PrimitiveInt64, false), nil},
		{"absent type is vacuous", memory.NewStringConstant("x"), nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := TryCast(tt.expr, tt.typ, nil, false)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, codes(errs))
		})
	}
}

func TestTryCast_TypeDefinitionUsesUnderlyingKind(t *testing.T) {
	td := memory.NewTypeDefinition("NS", "Age", edm.PrimitiveTypeOf(edm.PrimitiveByte))
	ref := memory.NewTypeReference(td, false)

	assert.Empty(t, TryCast(memory.NewIntegerConstant(18), ref, nil, false))
	require.Len(t, TryCast(memory.NewIntegerConstant(300), ref, nil, false), 1)
}

func newAddress() *memory.ComplexType {
	address := memory.NewComplexType("NS", "Address", nil, false, false)
	address.AddStructuralProperty("Street", prim(edm.PrimitiveString, false))
	address.AddStructuralProperty("City", prim(edm.PrimitiveString, false))
	address.AddStructuralProperty("Note", prim(edm.PrimitiveString, true))
	return address
}

func TestTryCastRecordAsType(t *testing.T) {
	address := newAddress()
	ref := memory.NewTypeReference(address, false)

	record := memory.NewRecordExpression(nil,
		memory.NewPropertyConstructor("Street", memory.NewStringConstant("Main")),
		memory.NewPropertyConstructor("Zip", memory.NewStringConstant("12345")),
	)

	errs := Default.TryCastRecordAsType(record, ref, nil, false)
	assert.ElementsMatch(t, []edmErrors.ErrorCode{
		edmErrors.RecordExpressionMissingRequiredProperty,
		edmErrors.RecordExpressionHasExtraProperties,
	}, codes(errs))
}

func TestTryCast_RecordOnOpenType(t *testing.T) {
	open := memory.NewComplexType("NS", "Bag", nil, false, true)
	open.AddStructuralProperty("Name", prim(edm.PrimitiveString, false))

	record := memory.NewRecordExpression(nil,
		memory.NewPropertyConstructor("Name", memory.NewStringConstant("n")),
		memory.NewPropertyConstructor("Anything", memory.NewIntegerConstant(1)),
	)
	assert.Empty(t, TryCast(record, memory.NewTypeReference(open, false), nil, false))
}

func TestTryCast_RecordPropertyValuesChecked(t *testing.T) {
	address := newAddress()
	record := memory.NewRecordExpression(nil,
		memory.NewPropertyConstructor("Street", memory.NewIntegerConstant(1)),
		memory.NewPropertyConstructor("City", memory.NewStringConstant("Oslo")),
	)
	errs := TryCast(record, memory.NewTypeReference(address, false), nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}, codes(errs))
}

func TestTryCast_RecordAgainstPrimitive(t *testing.T) {
	record := memory.NewRecordExpression(nil)
	errs := TryCast(record, prim(edm.PrimitiveString, false), nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.RecordExpressionNotValidForNonStructuredType}, codes(errs))
}

func TestTryCast_DeclaredRecordTypeInherits(t *testing.T) {
	base := memory.NewComplexType("NS", "Base", nil, false, false)
	derived := memory.NewComplexType("NS", "Derived", base, false, false)
	other := memory.NewComplexType("NS", "Other", nil, false, false)

	record := memory.NewRecordExpression(memory.NewTypeReference(derived, false))
	assert.Empty(t, TryCast(record, memory.NewTypeReference(base, false), nil, false))
	assert.NotEmpty(t, TryCast(record, memory.NewTypeReference(base, false), nil, true))
	assert.NotEmpty(t, TryCast(record, memory.NewTypeReference(other, false), nil, false))
}

func TestTryCast_CollectionUnionsElementErrors(t *testing.T) {
	ref := memory.NewCollectionReference(prim(edm.PrimitiveByte, false))
	coll := memory.NewCollectionExpression(nil,
		memory.NewIntegerConstant(1),
		memory.NewIntegerConstant(1000),
		memory.NewStringConstant("x"),
	)

	errs := TryCast(coll, ref, nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{
		edmErrors.IntegerConstantValueOutOfRange,
		edmErrors.ExpressionPrimitiveKindNotValidForAssertedType,
	}, codes(errs))

	errs = TryCast(coll, prim(edm.PrimitiveByte, false), nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.CollectionExpressionNotValidForNonCollectionType}, codes(errs))
}

func TestTryCast_IfChecksBothBranches(t *testing.T) {
	expr := memory.NewIfExpression(memory.NewBooleanConstant(true), memory.NewIntegerConstant(1000), memory.NewStringConstant("x"))
	errs := TryCast(expr, prim(edm.PrimitiveByte, false), nil, false)
	assert.Len(t, errs, 2)

	ok := memory.NewIfExpression(memory.NewBooleanConstant(true), memory.NewIntegerConstant(1), memory.NewIntegerConstant(2))
	assert.Empty(t, TryCast(ok, prim(edm.PrimitiveByte, false), nil, false))
}

func TestTryCast_Path(t *testing.T) {
	address := newAddress()
	customer := memory.NewEntityType("NS", "Customer", nil, false, false)
	customer.AddStructuralProperty("Age", prim(edm.PrimitiveInt16, true))
	customer.AddStructuralProperty("Home", memory.NewTypeReference(address, true))

	tests := []struct {
		name    string
		path    *memory.PathExpression
		typ     edm.TypeReference
		context edm.StructuredType
		want    []edmErrors.ErrorCode
	}{
		{"resolves and promotes", memory.NewPathExpression("Age"), prim(edm.PrimitiveInt32, false), customer, nil},
		{"promotes to Int64", memory.NewPathExpression("Age"), prim(edm.PrimitiveInt64, false), customer, nil},
		{"nested property", memory.NewPathExpression("Home", "City"), prim(edm.PrimitiveString, false), customer, nil},
		{"unknown segment", memory.NewPathExpression("Agee"), prim(edm.PrimitiveInt32, false), customer, []edmErrors.ErrorCode{edmErrors.PathIsNotValidForTheGivenContext}},
		{"wrong result type", memory.NewPathExpression("Age"), prim(edm.PrimitiveString, false), customer, []edmErrors.ErrorCode{edmErrors.ExpressionPrimitiveKindNotValidForAssertedType}},
		{"no context", memory.NewPathExpression("Whatever"), prim(edm.PrimitiveString, false), nil, nil},
		{"segment through primitive", memory.NewPathExpression("Age", "X"), prim(edm.PrimitiveString, false), customer, []edmErrors.ErrorCode{edmErrors.PathIsNotValidForTheGivenContext}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := TryCast(tt.path, tt.typ, tt.context, false)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, codes(errs))
		})
	}
}

func TestTryCast_PathSuggestion(t *testing.T) {
	customer := memory.NewEntityType("NS", "Customer", nil, false, false)
	customer.AddStructuralProperty("Name", prim(edm.PrimitiveString, false))

	errs := TryCast(memory.NewPathExpression("Nmae"), prim(edm.PrimitiveString, false), customer, false)
	require.Len(t, errs, 1)
	assert.Equal(t, "Did you mean 'Name'?", errs[0].Suggestion())
}

func TestTryCast_OpenTypePathIsVacuous(t *testing.T) {
	open := memory.NewEntityType("NS", "Open", nil, false, true)
	assert.Empty(t, TryCast(memory.NewPathExpression("Dynamic"), prim(edm.PrimitiveString, false), open, false))
}

func TestTryCast_EnumMember(t *testing.T) {
	color := memory.NewEnumType("NS", "Color", nil, false)
	red := color.AddMember("Red", 0)
	size := memory.NewEnumType("NS", "Size", nil, false)

	expr := memory.NewEnumMemberExpression(red)
	assert.Empty(t, TryCast(expr, memory.NewTypeReference(color, false), nil, false))

	errs := TryCast(expr, memory.NewTypeReference(size, false), nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.ExpressionEnumKindNotValidForAssertedType}, codes(errs))

	errs = TryCast(expr, prim(edm.PrimitiveInt32, false), nil, false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.ExpressionEnumKindNotValidForAssertedType}, codes(errs))
}

func TestTryCastValue_Structured(t *testing.T) {
	address := newAddress()
	value := memory.NewStructuredValue(nil,
		memory.NewPropertyValue("Street", memory.NewStringConstant("Main")),
		memory.NewPropertyValue("Planet", memory.NewStringConstant("Earth")),
	)
	errs := Default.TryCastValue(value, memory.NewTypeReference(address, false), false)
	assert.Equal(t, []edmErrors.ErrorCode{edmErrors.RecordExpressionHasExtraProperties}, codes(errs))
}

func TestTryCast_UsesCatalog(t *testing.T) {
	checker := New(edmErrors.DefaultCatalog.Merge(map[edmErrors.ErrorCode]string{
		edmErrors.NullCannotBeAssertedToBeANonNullableType: "no nulls for %s",
	}))
	errs := checker.TryCast(memory.NewNullExpression(), prim(edm.PrimitiveString, false), nil, false)
	require.Len(t, errs, 1)
	assert.Equal(t, "no nulls for Edm.String", errs[0].Message)
}
