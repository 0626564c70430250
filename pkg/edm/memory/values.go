package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// EnumValue is a value of an enum type.
type EnumValue struct {
	constant
	value int64
}

// NewEnumValue creates an enum value of type typ.
func NewEnumValue(typ edm.TypeReference, value int64) *EnumValue {
	v := &EnumValue{value: value}
	v.typ = orNil(typ)
	return v
}

func (v *EnumValue) ValueKind() edm.ValueKind { return edm.ValueKindEnum }
func (v *EnumValue) EnumMemberValue() int64   { return v.value }

// CollectionValue is a collection of values.
type CollectionValue struct {
	constant
	items []edm.Value
}

// NewCollectionValue creates a collection value.
func NewCollectionValue(typ edm.TypeReference, items ...edm.Value) *CollectionValue {
	v := &CollectionValue{items: items}
	v.typ = orNil(typ)
	return v
}

func (v *CollectionValue) ValueKind() edm.ValueKind { return edm.ValueKindCollection }
func (v *CollectionValue) Items() []edm.Value       { return v.items }

// StructuredValue is a value of a structured type.
type StructuredValue struct {
	constant
	properties []edm.PropertyValue
}

// NewStructuredValue creates a structured value.
func NewStructuredValue(typ edm.TypeReference, properties ...edm.PropertyValue) *StructuredValue {
	v := &StructuredValue{properties: properties}
	v.typ = orNil(typ)
	return v
}

func (v *StructuredValue) ValueKind() edm.ValueKind            { return edm.ValueKindStructured }
func (v *StructuredValue) PropertyValues() []edm.PropertyValue { return v.properties }

// PropertyValue is a named member of a structured value.
type PropertyValue struct {
	named
	value edm.Value
}

// NewPropertyValue creates a structured value member.
func NewPropertyValue(name string, value edm.Value) *PropertyValue {
	p := &PropertyValue{value: orNil(value)}
	p.name = name
	return p
}

func (p *PropertyValue) PropertyValue() edm.Value { return p.value }
