package validator

import (
	"math"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

var OperationParameterNameAlreadyDefinedDuplicate = NewRule("OperationParameterNameAlreadyDefinedDuplicate",
	func(ctx *Context, op edm.Operation) {
		seen := make(map[string]bool)
		for _, p := range op.Parameters() {
			if seen[p.Name()] {
				ctx.Report(p.Location(), edmErrors.DuplicateParameterName, edm.FullName(op), p.Name())
				continue
			}
			seen[p.Name()] = true
		}
	})

var BoundOperationMustHaveParameters = NewRule("BoundOperationMustHaveParameters",
	func(ctx *Context, op edm.Operation) {
		if op.IsBound() && len(op.Parameters()) == 0 {
			ctx.Report(op.Location(), edmErrors.BoundOperationMustHaveParameters, edm.FullName(op))
		}
	})

var FunctionMustHaveReturnType = NewRule("FunctionMustHaveReturnType",
	func(ctx *Context, fn edm.Function) {
		if edm.IsNil(fn.ReturnType()) {
			ctx.Report(fn.Location(), edmErrors.FunctionMustHaveReturnType, edm.FullName(fn))
		}
	})

// TypeReferenceInaccessibleSchemaType reports references to named types the
// model cannot resolve.
var TypeReferenceInaccessibleSchemaType = NewRule("TypeReferenceInaccessibleSchemaType",
	func(ctx *Context, tr edm.TypeReference) {
		def, ok := tr.Definition().(edm.SchemaType)
		if !ok || edm.IsBuiltin(def) || ctx.IsBad(def) {
			return
		}
		name := edm.FullName(def)
		if !edm.IsNil(ctx.Model().FindType(name)) {
			return
		}
		err := ctx.Report(tr.Location(), edmErrors.BadUnresolvedType, name)
		if s := edmErrors.SuggestName(name, schemaTypeNames(ctx.Model())); s != "" {
			err.WithExtension(edmErrors.ExtensionSuggestion, s)
		}
	})

func schemaTypeNames(m edm.Model) []string {
	var names []string
	for _, el := range m.SchemaElements() {
		if _, ok := el.(edm.SchemaType); ok && !edm.IsNil(el) {
			names = append(names, edm.FullName(el))
		}
	}
	return names
}

func facets(tr edm.TypeReference) (edm.FacetedTypeReference, edm.PrimitiveTypeKind, bool) {
	f, ok := tr.(edm.FacetedTypeReference)
	if !ok {
		return nil, edm.PrimitiveNone, false
	}
	return f, edm.PrimitiveKindOf(tr), true
}

var StringTypeReferenceMaxLengthNegative = NewRule("StringTypeReferenceMaxLengthNegative",
	func(ctx *Context, tr edm.TypeReference) {
		f, kind, ok := facets(tr)
		if !ok || kind != edm.PrimitiveString {
			return
		}
		if n, set := f.MaxLength(); set && n < 0 {
			ctx.Report(tr.Location(), edmErrors.MaxLengthOutOfRange, n)
		}
	})

var BinaryTypeReferenceMaxLengthNegative = NewRule("BinaryTypeReferenceMaxLengthNegative",
	func(ctx *Context, tr edm.TypeReference) {
		f, kind, ok := facets(tr)
		if !ok || kind != edm.PrimitiveBinary {
			return
		}
		if n, set := f.MaxLength(); set && n < 0 {
			ctx.Report(tr.Location(), edmErrors.MaxLengthOutOfRange, n)
		}
	})

var DecimalTypeReferencePrecisionOutOfRange = NewRule("DecimalTypeReferencePrecisionOutOfRange",
	func(ctx *Context, tr edm.TypeReference) {
		f, kind, ok := facets(tr)
		if !ok || kind != edm.PrimitiveDecimal {
			return
		}
		if p, set := f.Precision(); set && (p < 1 || p > math.MaxInt32) {
			ctx.Report(tr.Location(), edmErrors.PrecisionOutOfRange, p, 1, math.MaxInt32)
		}
	})

var DecimalTypeReferenceScaleOutOfRange = NewRule("DecimalTypeReferenceScaleOutOfRange",
	func(ctx *Context, tr edm.TypeReference) {
		f, kind, ok := facets(tr)
		if !ok || kind != edm.PrimitiveDecimal {
			return
		}
		s, set := f.Scale()
		if !set {
			return
		}
		p, hasPrecision := f.Precision()
		if s < 0 || (hasPrecision && s > p) {
			ctx.Report(tr.Location(), edmErrors.ScaleOutOfRange, s, p)
		}
	})

const maxTemporalPrecision = 12

var TemporalTypeReferencePrecisionOutOfRange = NewRule("TemporalTypeReferencePrecisionOutOfRange",
	func(ctx *Context, tr edm.TypeReference) {
		f, kind, ok := facets(tr)
		if !ok || !kind.IsTemporal() {
			return
		}
		if p, set := f.Precision(); set && (p < 0 || p > maxTemporalPrecision) {
			ctx.Report(tr.Location(), edmErrors.PrecisionOutOfRange, p, 0, maxTemporalPrecision)
		}
	})
