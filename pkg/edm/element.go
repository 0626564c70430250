package edm

import (
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// Element is the root capability: anything that lives in a model graph.
// Implementations must be comparable (pointer types in practice) because the
// validator tracks nodes by identity.
type Element interface {
	Location() edmErrors.Location
}

// NamedElement is an element with a simple identifier.
type NamedElement interface {
	Element
	Name() string
}

// SchemaElement is a named element declared directly in a schema namespace.
type SchemaElement interface {
	NamedElement
	SchemaElementKind() SchemaElementKind
	Namespace() string
}

// Checkable is implemented by elements that carry errors of their own, for
// example placeholders a loader creates for unresolved references.
type Checkable interface {
	Errors() []*edmErrors.EdmError
}

// Type is a type definition of any shape.
type Type interface {
	Element
	TypeKind() TypeKind
}

// SchemaType is a type declared in a schema.
type SchemaType interface {
	SchemaElement
	Type
}

// PrimitiveType is one of the built-in primitive types.
type PrimitiveType interface {
	SchemaType
	PrimitiveKind() PrimitiveTypeKind
}

// StructuredType is an entity or complex type.
type StructuredType interface {
	Type
	BaseType() StructuredType
	IsAbstract() bool
	IsOpen() bool
	DeclaredProperties() []Property
}

// ComplexType is a structured schema type.
type ComplexType interface {
	StructuredType
	SchemaType
}

// EntityType is a structured schema type with a key.
type EntityType interface {
	ComplexType
	DeclaredKey() []StructuralProperty
	HasStream() bool
}

// EnumType is an enumeration over an integral underlying type.
type EnumType interface {
	SchemaType
	UnderlyingType() PrimitiveType
	Members() []EnumMember
	IsFlags() bool
}

// EnumMember is a named constant of an enum type.
type EnumMember interface {
	NamedElement
	DeclaringType() EnumType
	Value() int64
}

// TypeDefinition is a named alias of a primitive type.
type TypeDefinition interface {
	SchemaType
	UnderlyingType() PrimitiveType
}

// CollectionType is an unnamed collection type.
type CollectionType interface {
	Type
	ElementType() TypeReference
}

// EntityReferenceType is an unnamed reference to an entity type.
type EntityReferenceType interface {
	Type
	EntityType() EntityType
}

// TypeReference is a use of a type together with its nullability.
type TypeReference interface {
	Element
	Definition() Type
	IsNullable() bool
}

// FacetedTypeReference exposes the facets of a primitive type reference.
// The second result of each accessor reports whether the facet is set.
type FacetedTypeReference interface {
	TypeReference
	MaxLength() (int, bool)
	IsUnbounded() bool
	Precision() (int, bool)
	Scale() (int, bool)
}

// Property is a member of a structured type.
type Property interface {
	NamedElement
	PropertyKind() PropertyKind
	Type() TypeReference
	DeclaringType() StructuredType
}

// StructuralProperty is a property holding data.
type StructuralProperty interface {
	Property
	DefaultValueString() string
}

// ReferentialConstraint pairs a dependent property with a principal property.
type ReferentialConstraint struct {
	Dependent StructuralProperty
	Principal StructuralProperty
}

// NavigationProperty is a property pointing at another entity type.
type NavigationProperty interface {
	Property
	Partner() NavigationProperty
	ContainsTarget() bool
	OnDelete() OnDeleteAction
	ReferentialConstraints() []ReferentialConstraint
}

// Operation is an action or a function.
type Operation interface {
	SchemaElement
	ReturnType() TypeReference
	Parameters() []OperationParameter
	IsBound() bool
}

// Function is a side-effect free operation.
type Function interface {
	Operation
	IsComposable() bool
}

// OperationParameter is a parameter of an operation.
type OperationParameter interface {
	NamedElement
	Type() TypeReference
	DeclaringOperation() Operation
}

// EntityContainer groups the entry points of a service.
type EntityContainer interface {
	SchemaElement
	Elements() []EntityContainerElement
}

// EntityContainerElement is a member of an entity container.
type EntityContainerElement interface {
	NamedElement
	ContainerElementKind() ContainerElementKind
	Container() EntityContainer
}

// NavigationSource is something navigation can start from.
type NavigationSource interface {
	NamedElement
	EntityType() EntityType
	NavigationPropertyBindings() []NavigationPropertyBinding
}

// EntitySet is a container member exposing a collection of entities.
type EntitySet interface {
	EntityContainerElement
	NavigationSource
	IncludeInServiceDocument() bool
}

// Singleton is a container member exposing a single entity.
type Singleton interface {
	EntityContainerElement
	NavigationSource
}

// NavigationPropertyBinding binds a navigation property to a target source.
type NavigationPropertyBinding interface {
	Element
	NavigationProperty() NavigationProperty
	Target() NavigationSource
	Path() string
}

// OperationImport exposes an operation through a container.
type OperationImport interface {
	EntityContainerElement
	Operation() Operation
}

// Term is a vocabulary term.
type Term interface {
	SchemaElement
	Type() TypeReference
	AppliesTo() []string
	DefaultValue() string
}

// VocabularyAnnotation applies a term to a target element.
type VocabularyAnnotation interface {
	Element
	Term() Term
	Target() Element
	Qualifier() string
	Value() Expression
}

// DirectValueAnnotation is a namespaced raw value attached to an element.
type DirectValueAnnotation interface {
	NamedElement
	NamespaceURI() string
	Value() any
}

// Model is the root of a model graph.
type Model interface {
	Element
	SchemaElements() []SchemaElement
	VocabularyAnnotations() []VocabularyAnnotation
	ReferencedModels() []Model
	DirectValueAnnotations(element Element) []DirectValueAnnotation
	FindType(qualifiedName string) SchemaType
	FindTerm(qualifiedName string) Term
	FindOperations(qualifiedName string) []Operation
	FindEntityContainer(qualifiedName string) EntityContainer
}
