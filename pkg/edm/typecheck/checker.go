package typecheck

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// Checker decides whether expressions and values are assignable to a type.
// It is stateless apart from the message catalog and safe for concurrent use.
type Checker struct {
	catalog edmErrors.Catalog
}

// New creates a checker producing messages from catalog. A nil catalog
// means edmErrors.DefaultCatalog.
func New(catalog edmErrors.Catalog) *Checker {
	if catalog == nil {
		catalog = edmErrors.DefaultCatalog
	}
	return &Checker{catalog: catalog}
}

// Default is a checker using the default catalog.
var Default = New(nil)

// TryCast checks expr against the asserted type using Default.
func TryCast(expr edm.Expression, typ edm.TypeReference, context edm.StructuredType, exact bool) []*edmErrors.EdmError {
	return Default.TryCast(expr, typ, context, exact)
}

func (c *Checker) newError(loc edmErrors.Location, code edmErrors.ErrorCode, args ...any) *edmErrors.EdmError {
	return edmErrors.New(loc, code, c.catalog.Message(code, args...))
}

// TryCast reports the errors that prevent expr from being used where typ is
// expected. context is the structured type paths are resolved against; a
// nil context makes path expressions vacuously compatible. With exact set,
// primitive promotion and inheritance are not allowed.
func (c *Checker) TryCast(expr edm.Expression, typ edm.TypeReference, context edm.StructuredType, exact bool) []*edmErrors.EdmError {
	if edm.IsNil(expr) || !hasKind(typ) {
		return nil
	}
	loc := expr.Location()

	switch expr.ExpressionKind() {
	case edm.ExpressionKindIntegerConstant,
		edm.ExpressionKindStringConstant,
		edm.ExpressionKindBinaryConstant,
		edm.ExpressionKindBooleanConstant,
		edm.ExpressionKindFloatingConstant,
		edm.ExpressionKindDecimalConstant,
		edm.ExpressionKindGuidConstant,
		edm.ExpressionKindDateTimeOffsetConstant,
		edm.ExpressionKindDurationConstant,
		edm.ExpressionKindDateConstant,
		edm.ExpressionKindTimeOfDayConstant:
		v, ok := expr.(edm.Value)
		if !ok {
			return nil
		}
		return c.TryCastValue(v, typ, exact)

	case edm.ExpressionKindNull:
		return c.castNull(loc, typ)

	case edm.ExpressionKindRecord:
		record, ok := expr.(edm.RecordExpression)
		if !ok {
			return nil
		}
		if declared := record.DeclaredType(); !edm.IsNil(declared) {
			return c.TestTypeReferenceMatch(declared, typ, loc, exact)
		}
		return c.TryCastRecordAsType(record, typ, context, exact)

	case edm.ExpressionKindCollection:
		collection, ok := expr.(edm.CollectionExpression)
		if !ok {
			return nil
		}
		if declared := collection.DeclaredType(); !edm.IsNil(declared) {
			return c.TestTypeReferenceMatch(declared, typ, loc, exact)
		}
		return c.tryCastCollection(collection, typ, context, exact)

	case edm.ExpressionKindPath, edm.ExpressionKindPropertyPath, edm.ExpressionKindNavigationPropertyPath:
		path, ok := expr.(edm.PathExpression)
		if !ok {
			return nil
		}
		return c.tryCastPath(path, typ, context, exact)

	case edm.ExpressionKindIf:
		ifExpr, ok := expr.(edm.IfExpression)
		if !ok {
			return nil
		}
		errs := c.TryCast(ifExpr.TrueExpression(), typ, context, exact)
		return append(errs, c.TryCast(ifExpr.FalseExpression(), typ, context, exact)...)

	case edm.ExpressionKindCast:
		cast, ok := expr.(edm.CastExpression)
		if !ok {
			return nil
		}
		return c.TestTypeReferenceMatch(cast.Type(), typ, loc, exact)

	case edm.ExpressionKindIsType:
		return c.TestTypeReferenceMatch(booleanReference, typ, loc, exact)

	case edm.ExpressionKindLabeled:
		labeled, ok := expr.(edm.LabeledExpression)
		if !ok {
			return nil
		}
		return c.TryCast(labeled.Inner(), typ, context, exact)

	case edm.ExpressionKindFunctionApplication:
		apply, ok := expr.(edm.ApplyExpression)
		if !ok || edm.IsNil(apply.AppliedFunction()) {
			return nil
		}
		return c.TestTypeReferenceMatch(apply.AppliedFunction().ReturnType(), typ, loc, exact)

	case edm.ExpressionKindEnumMember:
		members, ok := expr.(edm.EnumMemberExpression)
		if !ok {
			return nil
		}
		return c.tryCastEnumMembers(loc, members.EnumMembers(), typ, exact)
	}

	return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionNotValidForTheAssertedType, edm.TypeReferenceName(typ))}
}

// TryCastValue reports the errors that prevent v from being used where typ
// is expected. A value with its own type is checked by type; otherwise the
// value itself is checked against the shape of typ.
func (c *Checker) TryCastValue(v edm.Value, typ edm.TypeReference, exact bool) []*edmErrors.EdmError {
	if edm.IsNil(v) || !hasKind(typ) {
		return nil
	}
	loc := v.Location()
	if own := v.Type(); !edm.IsNil(own) {
		return c.TestTypeReferenceMatch(own, typ, loc, exact)
	}

	switch v.ValueKind() {
	case edm.ValueKindNull:
		return c.castNull(loc, typ)
	case edm.ValueKindCollection:
		items, ok := v.(edm.CollectionValue)
		if !ok {
			return nil
		}
		elementType, isCollection := collectionElementType(typ)
		if !isCollection {
			return []*edmErrors.EdmError{c.newError(loc, edmErrors.CollectionExpressionNotValidForNonCollectionType, edm.TypeReferenceName(typ))}
		}
		var errs []*edmErrors.EdmError
		for _, item := range items.Items() {
			errs = append(errs, c.TryCastValue(item, elementType, exact)...)
		}
		return errs
	case edm.ValueKindStructured:
		sv, ok := v.(edm.StructuredValue)
		if !ok {
			return nil
		}
		return c.tryCastStructuredValue(sv, typ, exact)
	case edm.ValueKindEnum:
		if typ.Definition().TypeKind() != edm.TypeKindEnum {
			return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionEnumKindNotValidForAssertedType, edm.TypeReferenceName(typ))}
		}
		return nil
	}
	return c.tryCastPrimitive(v, typ)
}

// TestTypeReferenceMatch checks an expression's own type against the
// asserted type. Nullability is checked first and regardless of exact.
func (c *Checker) TestTypeReferenceMatch(exprType, asserted edm.TypeReference, loc edmErrors.Location, exact bool) []*edmErrors.EdmError {
	if !hasKind(asserted) || !hasKind(exprType) {
		return nil
	}
	if !asserted.IsNullable() && exprType.IsNullable() {
		return []*edmErrors.EdmError{c.newError(loc, edmErrors.CannotAssertNullableTypeAsNonNullableType,
			edm.TypeReferenceName(exprType), edm.TypeReferenceName(asserted))}
	}
	return c.TestTypeMatch(exprType.Definition(), asserted.Definition(), loc, exact)
}

// TestTypeMatch checks a type against an asserted type, ignoring
// nullability.
func (c *Checker) TestTypeMatch(exprType, asserted edm.Type, loc edmErrors.Location, exact bool) []*edmErrors.EdmError {
	if edm.IsNil(exprType) || edm.IsNil(asserted) ||
		exprType.TypeKind() == edm.TypeKindNone || asserted.TypeKind() == edm.TypeKindNone {
		return nil
	}
	if exact {
		if !IsEquivalentTo(exprType, asserted) {
			return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionNotValidForTheAssertedType, edm.TypeName(asserted))}
		}
		return nil
	}

	fromKind, toKind := edm.PrimitiveKindOfType(exprType), edm.PrimitiveKindOfType(asserted)
	if fromKind != edm.PrimitiveNone && toKind != edm.PrimitiveNone {
		if !PromotesTo(fromKind, toKind) {
			return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionPrimitiveKindNotValidForAssertedType, fromKind, edm.TypeName(asserted))}
		}
		return nil
	}
	if !IsOrInheritsFrom(exprType, asserted) {
		return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionNotValidForTheAssertedType, edm.TypeName(asserted))}
	}
	return nil
}

// TryCastRecordAsType checks the properties of record against the
// structured type typ: every non-nullable structural property must be
// supplied and, for closed types, no undeclared property may appear.
func (c *Checker) TryCastRecordAsType(record edm.RecordExpression, typ edm.TypeReference, context edm.StructuredType, exact bool) []*edmErrors.EdmError {
	if edm.IsNil(record) || !hasKind(typ) {
		return nil
	}
	st := edm.StructuredTypeOf(typ)
	if st == nil {
		return []*edmErrors.EdmError{c.newError(record.Location(), edmErrors.RecordExpressionNotValidForNonStructuredType, edm.TypeReferenceName(typ))}
	}

	supplied := make(map[string]edm.PropertyConstructor)
	for _, pc := range record.Properties() {
		if !edm.IsNil(pc) {
			if _, dup := supplied[pc.Name()]; !dup {
				supplied[pc.Name()] = pc
			}
		}
	}

	var errs []*edmErrors.EdmError
	declared := make(map[string]bool)
	for _, prop := range edm.AllProperties(st) {
		if edm.IsNil(prop) {
			continue
		}
		declared[prop.Name()] = true
		pc, ok := supplied[prop.Name()]
		if !ok {
			if prop.PropertyKind() == edm.PropertyKindStructural && !edm.IsNil(prop.Type()) && !prop.Type().IsNullable() {
				errs = append(errs, c.newError(record.Location(), edmErrors.RecordExpressionMissingRequiredProperty, prop.Name()))
			}
			continue
		}
		errs = append(errs, c.TryCast(pc.Value(), prop.Type(), context, exact)...)
	}

	if !st.IsOpen() {
		for _, pc := range record.Properties() {
			if edm.IsNil(pc) || declared[pc.Name()] {
				continue
			}
			err := c.newError(pc.Location(), edmErrors.RecordExpressionHasExtraProperties, pc.Name(), edm.TypeName(st))
			if hint := edmErrors.SuggestName(pc.Name(), propertyNames(st)); hint != "" {
				err.WithExtension(edmErrors.ExtensionSuggestion, hint)
			}
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *Checker) tryCastStructuredValue(v edm.StructuredValue, typ edm.TypeReference, exact bool) []*edmErrors.EdmError {
	st := edm.StructuredTypeOf(typ)
	if st == nil {
		return []*edmErrors.EdmError{c.newError(v.Location(), edmErrors.RecordExpressionNotValidForNonStructuredType, edm.TypeReferenceName(typ))}
	}
	var errs []*edmErrors.EdmError
	for _, pv := range v.PropertyValues() {
		if edm.IsNil(pv) {
			continue
		}
		prop := edm.FindProperty(st, pv.Name())
		if prop == nil {
			if !st.IsOpen() {
				errs = append(errs, c.newError(pv.Location(), edmErrors.RecordExpressionHasExtraProperties, pv.Name(), edm.TypeName(st)))
			}
			continue
		}
		errs = append(errs, c.TryCastValue(pv.PropertyValue(), prop.Type(), exact)...)
	}
	return errs
}

func (c *Checker) tryCastCollection(collection edm.CollectionExpression, typ edm.TypeReference, context edm.StructuredType, exact bool) []*edmErrors.EdmError {
	elementType, ok := collectionElementType(typ)
	if !ok {
		return []*edmErrors.EdmError{c.newError(collection.Location(), edmErrors.CollectionExpressionNotValidForNonCollectionType, edm.TypeReferenceName(typ))}
	}
	var errs []*edmErrors.EdmError
	for _, element := range collection.Elements() {
		errs = append(errs, c.TryCast(element, elementType, context, exact)...)
	}
	return errs
}

func (c *Checker) tryCastPath(path edm.PathExpression, typ edm.TypeReference, context edm.StructuredType, exact bool) []*edmErrors.EdmError {
	if edm.IsNil(context) {
		return nil
	}
	var current edm.Type = context
	var result edm.TypeReference
	for _, segment := range path.PathSegments() {
		if strings.Contains(segment, ".") || strings.HasPrefix(segment, "@") {
			// Type casts and annotation segments are not followed.
			return nil
		}
		st, ok := current.(edm.StructuredType)
		if !ok {
			return []*edmErrors.EdmError{c.newError(path.Location(), edmErrors.PathIsNotValidForTheGivenContext, segment, edm.TypeName(current))}
		}
		prop := edm.FindProperty(st, segment)
		if prop == nil {
			if st.IsOpen() {
				return nil
			}
			err := c.newError(path.Location(), edmErrors.PathIsNotValidForTheGivenContext, segment, edm.TypeName(current))
			if hint := edmErrors.SuggestName(segment, propertyNames(st)); hint != "" {
				err.WithExtension(edmErrors.ExtensionSuggestion, hint)
			}
			return []*edmErrors.EdmError{err}
		}
		result = prop.Type()
		if !hasKind(result) {
			return nil
		}
		current = result.Definition()
		if elementType, ok := collectionElementType(result); ok && hasKind(elementType) {
			current = elementType.Definition()
		}
	}
	if result == nil {
		return nil
	}
	return c.TestTypeMatch(result.Definition(), typ.Definition(), path.Location(), exact)
}

func (c *Checker) tryCastEnumMembers(loc edmErrors.Location, members []edm.EnumMember, typ edm.TypeReference, exact bool) []*edmErrors.EdmError {
	enumType, ok := typ.Definition().(edm.EnumType)
	if !ok || typ.Definition().TypeKind() != edm.TypeKindEnum {
		return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionEnumKindNotValidForAssertedType, edm.TypeReferenceName(typ))}
	}
	var errs []*edmErrors.EdmError
	for _, member := range members {
		if edm.IsNil(member) || edm.IsNil(member.DeclaringType()) {
			continue
		}
		if len(c.TestTypeMatch(member.DeclaringType(), enumType, loc, exact)) > 0 {
			errs = append(errs, c.newError(loc, edmErrors.ExpressionEnumKindNotValidForAssertedType, edm.TypeReferenceName(typ)))
		}
	}
	return errs
}

func (c *Checker) castNull(loc edmErrors.Location, typ edm.TypeReference) []*edmErrors.EdmError {
	if typ.IsNullable() {
		return nil
	}
	return []*edmErrors.EdmError{c.newError(loc, edmErrors.NullCannotBeAssertedToBeANonNullableType, edm.TypeReferenceName(typ))}
}

// tryCastPrimitive checks an untyped primitive value against the shape of
// the asserted type.
func (c *Checker) tryCastPrimitive(v edm.Value, typ edm.TypeReference) []*edmErrors.EdmError {
	loc := v.Location()
	target := edm.PrimitiveKindOf(typ)
	if target == edm.PrimitiveNone {
		return []*edmErrors.EdmError{c.newError(loc, edmErrors.PrimitiveConstantExpressionNotValidForNonPrimitiveType, edm.TypeReferenceName(typ))}
	}
	kindMismatch := func(kind edm.ValueKind) []*edmErrors.EdmError {
		return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionPrimitiveKindNotValidForAssertedType, kind, edm.TypeReferenceName(typ))}
	}

	switch v.ValueKind() {
	case edm.ValueKindInteger:
		if !target.IsIntegral() {
			return kindMismatch(v.ValueKind())
		}
		iv, ok := v.(edm.IntegerValue)
		if ok && !IntegerFits(iv.Int(), target) {
			return []*edmErrors.EdmError{c.newError(loc, edmErrors.IntegerConstantValueOutOfRange, iv.Int(), edm.TypeReferenceName(typ))}
		}
		return nil

	case edm.ValueKindString:
		if target != edm.PrimitiveString {
			return kindMismatch(v.ValueKind())
		}
		if sv, ok := v.(edm.StringValue); ok {
			if maxLength, limited := lengthLimit(typ); limited {
				if n := utf8.RuneCountInString(sv.Text()); n > maxLength {
					return []*edmErrors.EdmError{c.newError(loc, edmErrors.StringConstantLengthOutOfRange, n, maxLength)}
				}
			}
		}
		return nil

	case edm.ValueKindBinary:
		if target != edm.PrimitiveBinary {
			return kindMismatch(v.ValueKind())
		}
		if bv, ok := v.(edm.BinaryValue); ok {
			if maxLength, limited := lengthLimit(typ); limited && len(bv.Bytes()) > maxLength {
				return []*edmErrors.EdmError{c.newError(loc, edmErrors.BinaryConstantLengthOutOfRange, len(bv.Bytes()), maxLength)}
			}
		}
		return nil

	case edm.ValueKindFloating:
		if !target.IsFloating() {
			return kindMismatch(v.ValueKind())
		}
		return nil
	}

	if want, ok := exactPrimitiveKinds[v.ValueKind()]; ok {
		if target != want {
			return kindMismatch(v.ValueKind())
		}
		return nil
	}
	return []*edmErrors.EdmError{c.newError(loc, edmErrors.ExpressionNotValidForTheAssertedType, edm.TypeReferenceName(typ))}
}

// exactPrimitiveKinds maps value kinds that never promote to the only
// primitive kind they are assignable to.
var exactPrimitiveKinds = map[edm.ValueKind]edm.PrimitiveTypeKind{
	edm.ValueKindBoolean:        edm.PrimitiveBoolean,
	edm.ValueKindGuid:           edm.PrimitiveGuid,
	edm.ValueKindDecimal:        edm.PrimitiveDecimal,
	edm.ValueKindDateTimeOffset: edm.PrimitiveDateTimeOffset,
	edm.ValueKindDuration:       edm.PrimitiveDuration,
	edm.ValueKindDate:           edm.PrimitiveDate,
	edm.ValueKindTimeOfDay:      edm.PrimitiveTimeOfDay,
}

// IntegerFits reports whether v is within the range of the integral kind.
func IntegerFits(v int64, kind edm.PrimitiveTypeKind) bool {
	switch kind {
	case edm.PrimitiveInt64:
		return true
	case edm.PrimitiveInt32:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case edm.PrimitiveInt16:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case edm.PrimitiveByte:
		return v >= 0 && v <= math.MaxUint8
	case edm.PrimitiveSByte:
		return v >= math.MinInt8 && v <= math.MaxInt8
	}
	return false
}

func lengthLimit(typ edm.TypeReference) (int, bool) {
	faceted, ok := typ.(edm.FacetedTypeReference)
	if !ok || faceted.IsUnbounded() {
		return 0, false
	}
	return faceted.MaxLength()
}

var booleanReference = PrimitiveReference(edm.PrimitiveBoolean, false)

// PrimitiveReference returns a reference to a built-in primitive type, for
// types implied by an expression kind rather than declared in a model.
func PrimitiveReference(kind edm.PrimitiveTypeKind, nullable bool) edm.TypeReference {
	return &primitiveReference{kind: kind, nullable: nullable}
}

type primitiveReference struct {
	kind     edm.PrimitiveTypeKind
	nullable bool
}

func (r *primitiveReference) Location() edmErrors.Location { return edmErrors.Location{} }
func (r *primitiveReference) Definition() edm.Type         { return edm.PrimitiveTypeOf(r.kind) }
func (r *primitiveReference) IsNullable() bool             { return r.nullable }

func hasKind(typ edm.TypeReference) bool {
	return !edm.IsNil(typ) && !edm.IsNil(typ.Definition()) && typ.Definition().TypeKind() != edm.TypeKindNone
}

func collectionElementType(typ edm.TypeReference) (edm.TypeReference, bool) {
	if !hasKind(typ) || typ.Definition().TypeKind() != edm.TypeKindCollection {
		return nil, false
	}
	ct, ok := typ.Definition().(edm.CollectionType)
	if !ok {
		return nil, false
	}
	return ct.ElementType(), true
}

func propertyNames(st edm.StructuredType) []string {
	var names []string
	for _, p := range edm.AllProperties(st) {
		if !edm.IsNil(p) {
			names = append(names, p.Name())
		}
	}
	return names
}
