package edm

import (
	"strings"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// CoreNamespace is the namespace of the built-in primitive types.
const CoreNamespace = "Edm"

type corePrimitive struct {
	kind PrimitiveTypeKind
}

func (p *corePrimitive) Location() edmErrors.Location         { return edmErrors.Location{} }
func (p *corePrimitive) Name() string                         { return p.kind.String() }
func (p *corePrimitive) Namespace() string                    { return CoreNamespace }
func (p *corePrimitive) SchemaElementKind() SchemaElementKind { return SchemaElementKindTypeDefinition }
func (p *corePrimitive) TypeKind() TypeKind                   { return TypeKindPrimitive }
func (p *corePrimitive) PrimitiveKind() PrimitiveTypeKind     { return p.kind }

var corePrimitives = func() []*corePrimitive {
	ps := make([]*corePrimitive, primitiveKindEnd)
	for k := PrimitiveBinary; k < primitiveKindEnd; k++ {
		ps[k] = &corePrimitive{kind: k}
	}
	return ps
}()

// PrimitiveTypeOf returns the built-in primitive type for kind, or nil for
// PrimitiveNone and unknown kinds.
func PrimitiveTypeOf(kind PrimitiveTypeKind) PrimitiveType {
	if kind <= PrimitiveNone || kind >= primitiveKindEnd {
		return nil
	}
	return corePrimitives[kind]
}

// LookupPrimitiveType resolves "Edm.Int32" or "Int32" to a built-in type.
func LookupPrimitiveType(name string) (PrimitiveType, bool) {
	name = strings.TrimPrefix(name, CoreNamespace+".")
	for _, p := range corePrimitives[1:] {
		if p.kind.String() == name {
			return p, true
		}
	}
	return nil, false
}

// IsBuiltin reports whether element is one of the built-in primitive types.
// Built-in types are always valid and never walked.
func IsBuiltin(element any) bool {
	_, ok := element.(*corePrimitive)
	return ok
}

// PrimitiveTypes returns every built-in primitive type in kind order.
func PrimitiveTypes() []PrimitiveType {
	out := make([]PrimitiveType, 0, len(corePrimitives)-1)
	for _, p := range corePrimitives[1:] {
		out = append(out, p)
	}
	return out
}
