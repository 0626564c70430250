package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// TypeReference is a reference to a type with nullability and facets.
type TypeReference struct {
	element
	definition edm.Type
	nullable   bool
	maxLength  *int
	unbounded  bool
	precision  *int
	scale      *int
}

// NewTypeReference references def.
func NewTypeReference(def edm.Type, nullable bool) *TypeReference {
	return &TypeReference{definition: orNil(def), nullable: nullable}
}

// NewPrimitiveReference references a built-in primitive type.
func NewPrimitiveReference(kind edm.PrimitiveTypeKind, nullable bool) *TypeReference {
	return NewTypeReference(edm.PrimitiveTypeOf(kind), nullable)
}

// NewCollectionReference references a collection of element.
func NewCollectionReference(elementType edm.TypeReference) *TypeReference {
	return NewTypeReference(NewCollectionType(elementType), false)
}

func (r *TypeReference) Definition() edm.Type { return r.definition }
func (r *TypeReference) IsNullable() bool     { return r.nullable }
func (r *TypeReference) IsUnbounded() bool    { return r.unbounded }

func (r *TypeReference) MaxLength() (int, bool) { return facet(r.maxLength) }
func (r *TypeReference) Precision() (int, bool) { return facet(r.precision) }
func (r *TypeReference) Scale() (int, bool)     { return facet(r.scale) }

// WithMaxLength sets the max length facet.
func (r *TypeReference) WithMaxLength(n int) *TypeReference {
	r.maxLength = &n
	return r
}

// WithUnboundedLength marks the max length facet as "max".
func (r *TypeReference) WithUnboundedLength() *TypeReference {
	r.unbounded = true
	return r
}

// WithPrecision sets the precision facet.
func (r *TypeReference) WithPrecision(n int) *TypeReference {
	r.precision = &n
	return r
}

// WithScale sets the scale facet.
func (r *TypeReference) WithScale(n int) *TypeReference {
	r.scale = &n
	return r
}

func facet(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// CollectionType is an unnamed collection type.
type CollectionType struct {
	element
	elementType edm.TypeReference
}

// NewCollectionType creates a collection of elementType.
func NewCollectionType(elementType edm.TypeReference) *CollectionType {
	return &CollectionType{elementType: orNil(elementType)}
}

func (c *CollectionType) TypeKind() edm.TypeKind         { return edm.TypeKindCollection }
func (c *CollectionType) ElementType() edm.TypeReference { return c.elementType }

// EntityReferenceType is an unnamed reference to an entity type.
type EntityReferenceType struct {
	element
	entityType edm.EntityType
}

// NewEntityReferenceType creates a reference type for entityType.
func NewEntityReferenceType(entityType edm.EntityType) *EntityReferenceType {
	return &EntityReferenceType{entityType: orNil(entityType)}
}

func (r *EntityReferenceType) TypeKind() edm.TypeKind     { return edm.TypeKindEntityReference }
func (r *EntityReferenceType) EntityType() edm.EntityType { return r.entityType }

// structuredType holds what entity and complex types share.
type structuredType struct {
	schemaNamed
	base       edm.StructuredType
	abstract   bool
	open       bool
	properties []edm.Property
}

func (t *structuredType) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindTypeDefinition
}
func (t *structuredType) BaseType() edm.StructuredType       { return t.base }
func (t *structuredType) IsAbstract() bool                   { return t.abstract }
func (t *structuredType) IsOpen() bool                       { return t.open }
func (t *structuredType) DeclaredProperties() []edm.Property { return t.properties }

// SetBaseType replaces the base type.
func (t *structuredType) SetBaseType(base edm.StructuredType) { t.base = orNil(base) }

// AddProperty appends p to the declared properties. p may be nil.
func (t *structuredType) AddProperty(p edm.Property) { t.properties = append(t.properties, p) }

// EntityType is an entity type.
type EntityType struct {
	structuredType
	key       []edm.StructuralProperty
	hasStream bool
}

// NewEntityType creates an entity type.
func NewEntityType(namespace, name string, base edm.StructuredType, abstract, open bool) *EntityType {
	t := &EntityType{}
	t.name, t.namespace = name, namespace
	t.base = orNil(base)
	t.abstract, t.open = abstract, open
	return t
}

func (t *EntityType) TypeKind() edm.TypeKind                { return edm.TypeKindEntity }
func (t *EntityType) DeclaredKey() []edm.StructuralProperty { return t.key }
func (t *EntityType) HasStream() bool                       { return t.hasStream }

// SetHasStream marks the type as a media entity.
func (t *EntityType) SetHasStream(v bool) { t.hasStream = v }

// AddKeys appends properties to the declared key.
func (t *EntityType) AddKeys(props ...edm.StructuralProperty) {
	t.key = append(t.key, props...)
}

// AddStructuralProperty declares a structural property.
func (t *EntityType) AddStructuralProperty(name string, typ edm.TypeReference) *StructuralProperty {
	p := NewStructuralProperty(t, name, typ)
	t.AddProperty(p)
	return p
}

// AddNavigationProperty declares a navigation property.
func (t *EntityType) AddNavigationProperty(info NavigationPropertyInfo) *NavigationProperty {
	p := NewNavigationProperty(t, info)
	t.AddProperty(p)
	return p
}

// ComplexType is a complex type.
type ComplexType struct {
	structuredType
}

// NewComplexType creates a complex type.
func NewComplexType(namespace, name string, base edm.StructuredType, abstract, open bool) *ComplexType {
	t := &ComplexType{}
	t.name, t.namespace = name, namespace
	t.base = orNil(base)
	t.abstract, t.open = abstract, open
	return t
}

func (t *ComplexType) TypeKind() edm.TypeKind { return edm.TypeKindComplex }

// AddStructuralProperty declares a structural property.
func (t *ComplexType) AddStructuralProperty(name string, typ edm.TypeReference) *StructuralProperty {
	p := NewStructuralProperty(t, name, typ)
	t.AddProperty(p)
	return p
}

// AddNavigationProperty declares a navigation property.
func (t *ComplexType) AddNavigationProperty(info NavigationPropertyInfo) *NavigationProperty {
	p := NewNavigationProperty(t, info)
	t.AddProperty(p)
	return p
}

// EnumType is an enumeration type.
type EnumType struct {
	schemaNamed
	underlying edm.PrimitiveType
	flags      bool
	members    []edm.EnumMember
}

// NewEnumType creates an enum type. A nil underlying type means Int32.
func NewEnumType(namespace, name string, underlying edm.PrimitiveType, flags bool) *EnumType {
	t := &EnumType{underlying: orNil(underlying), flags: flags}
	if t.underlying == nil {
		t.underlying = edm.PrimitiveTypeOf(edm.PrimitiveInt32)
	}
	t.name, t.namespace = name, namespace
	return t
}

func (t *EnumType) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindTypeDefinition
}
func (t *EnumType) TypeKind() edm.TypeKind            { return edm.TypeKindEnum }
func (t *EnumType) UnderlyingType() edm.PrimitiveType { return t.underlying }
func (t *EnumType) IsFlags() bool                     { return t.flags }
func (t *EnumType) Members() []edm.EnumMember         { return t.members }

// AddMember declares a member with an explicit value.
func (t *EnumType) AddMember(name string, value int64) *EnumMember {
	m := &EnumMember{declaring: t, value: value}
	m.name = name
	t.members = append(t.members, m)
	return m
}

// EnumMember is a member of an enum type.
type EnumMember struct {
	named
	declaring edm.EnumType
	value     int64
}

func (m *EnumMember) DeclaringType() edm.EnumType { return m.declaring }
func (m *EnumMember) Value() int64                { return m.value }

// TypeDefinition is a named alias of a primitive type.
type TypeDefinition struct {
	schemaNamed
	underlying edm.PrimitiveType
}

// NewTypeDefinition creates a type definition.
func NewTypeDefinition(namespace, name string, underlying edm.PrimitiveType) *TypeDefinition {
	t := &TypeDefinition{underlying: orNil(underlying)}
	t.name, t.namespace = name, namespace
	return t
}

func (t *TypeDefinition) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindTypeDefinition
}
func (t *TypeDefinition) TypeKind() edm.TypeKind            { return edm.TypeKindTypeDefinition }
func (t *TypeDefinition) UnderlyingType() edm.PrimitiveType { return t.underlying }
