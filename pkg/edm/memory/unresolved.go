package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// unresolved carries the error a placeholder reports about itself.
type unresolved struct {
	errs []*edmErrors.EdmError
}

func (u *unresolved) Errors() []*edmErrors.EdmError { return u.errs }

func newUnresolved(loc edmErrors.Location, code edmErrors.ErrorCode, name string) unresolved {
	msg := edmErrors.DefaultCatalog.Message(code, name)
	return unresolved{errs: []*edmErrors.EdmError{edmErrors.New(loc, code, msg)}}
}

// UnresolvedType stands in for a type name that could not be resolved.
type UnresolvedType struct {
	schemaNamed
	unresolved
}

// NewUnresolvedType creates a placeholder for qualifiedName.
func NewUnresolvedType(qualifiedName string, loc edmErrors.Location) *UnresolvedType {
	t := &UnresolvedType{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedType, qualifiedName)}
	t.namespace, t.name = edm.SplitQualifiedName(qualifiedName)
	t.loc = loc
	return t
}

func (t *UnresolvedType) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindTypeDefinition
}
func (t *UnresolvedType) TypeKind() edm.TypeKind { return edm.TypeKindNone }

// UnresolvedEntityType stands in for an entity or complex type name that
// could not be resolved.
type UnresolvedEntityType struct {
	structuredType
	unresolved
	kind edm.TypeKind
}

// NewUnresolvedEntityType creates an entity type placeholder.
func NewUnresolvedEntityType(qualifiedName string, loc edmErrors.Location) *UnresolvedEntityType {
	return newUnresolvedStructured(qualifiedName, loc, edm.TypeKindEntity)
}

// NewUnresolvedComplexType creates a complex type placeholder.
func NewUnresolvedComplexType(qualifiedName string, loc edmErrors.Location) *UnresolvedEntityType {
	return newUnresolvedStructured(qualifiedName, loc, edm.TypeKindComplex)
}

func newUnresolvedStructured(qualifiedName string, loc edmErrors.Location, kind edm.TypeKind) *UnresolvedEntityType {
	t := &UnresolvedEntityType{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedType, qualifiedName), kind: kind}
	t.namespace, t.name = edm.SplitQualifiedName(qualifiedName)
	t.loc = loc
	return t
}

func (t *UnresolvedEntityType) TypeKind() edm.TypeKind                { return t.kind }
func (t *UnresolvedEntityType) DeclaredKey() []edm.StructuralProperty { return nil }
func (t *UnresolvedEntityType) HasStream() bool                       { return false }

// UnresolvedTerm stands in for a term name that could not be resolved.
type UnresolvedTerm struct {
	schemaNamed
	unresolved
}

// NewUnresolvedTerm creates a term placeholder.
func NewUnresolvedTerm(qualifiedName string, loc edmErrors.Location) *UnresolvedTerm {
	t := &UnresolvedTerm{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedTerm, qualifiedName)}
	t.namespace, t.name = edm.SplitQualifiedName(qualifiedName)
	t.loc = loc
	return t
}

func (t *UnresolvedTerm) SchemaElementKind() edm.SchemaElementKind { return edm.SchemaElementKindTerm }
func (t *UnresolvedTerm) Type() edm.TypeReference                  { return nil }
func (t *UnresolvedTerm) AppliesTo() []string                      { return nil }
func (t *UnresolvedTerm) DefaultValue() string                     { return "" }

// UnresolvedProperty stands in for a property name that could not be
// resolved, for example in a key or referential constraint.
type UnresolvedProperty struct {
	named
	unresolved
	declaring edm.StructuredType
}

// NewUnresolvedProperty creates a property placeholder.
func NewUnresolvedProperty(declaring edm.StructuredType, name string, loc edmErrors.Location) *UnresolvedProperty {
	p := &UnresolvedProperty{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedProperty, name), declaring: orNil(declaring)}
	p.name, p.loc = name, loc
	return p
}

func (p *UnresolvedProperty) PropertyKind() edm.PropertyKind    { return edm.PropertyKindStructural }
func (p *UnresolvedProperty) Type() edm.TypeReference           { return nil }
func (p *UnresolvedProperty) DeclaringType() edm.StructuredType { return p.declaring }
func (p *UnresolvedProperty) DefaultValueString() string        { return "" }

// UnresolvedNavigationProperty stands in for a navigation property name
// that could not be resolved.
type UnresolvedNavigationProperty struct {
	named
	unresolved
	declaring edm.StructuredType
}

// NewUnresolvedNavigationProperty creates a navigation property placeholder.
func NewUnresolvedNavigationProperty(declaring edm.StructuredType, name string, loc edmErrors.Location) *UnresolvedNavigationProperty {
	p := &UnresolvedNavigationProperty{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedProperty, name), declaring: orNil(declaring)}
	p.name, p.loc = name, loc
	return p
}

func (p *UnresolvedNavigationProperty) PropertyKind() edm.PropertyKind {
	return edm.PropertyKindNavigation
}
func (p *UnresolvedNavigationProperty) Type() edm.TypeReference           { return nil }
func (p *UnresolvedNavigationProperty) DeclaringType() edm.StructuredType { return p.declaring }
func (p *UnresolvedNavigationProperty) Partner() edm.NavigationProperty   { return nil }
func (p *UnresolvedNavigationProperty) ContainsTarget() bool              { return false }
func (p *UnresolvedNavigationProperty) OnDelete() edm.OnDeleteAction      { return edm.OnDeleteNone }

func (p *UnresolvedNavigationProperty) ReferentialConstraints() []edm.ReferentialConstraint {
	return nil
}

// UnresolvedOperation stands in for an operation name that could not be
// resolved.
type UnresolvedOperation struct {
	schemaNamed
	unresolved
}

// NewUnresolvedOperation creates an operation placeholder.
func NewUnresolvedOperation(qualifiedName string, loc edmErrors.Location) *UnresolvedOperation {
	o := &UnresolvedOperation{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedOperation, qualifiedName)}
	o.namespace, o.name = edm.SplitQualifiedName(qualifiedName)
	o.loc = loc
	return o
}

func (o *UnresolvedOperation) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindFunction
}
func (o *UnresolvedOperation) ReturnType() edm.TypeReference        { return nil }
func (o *UnresolvedOperation) Parameters() []edm.OperationParameter { return nil }
func (o *UnresolvedOperation) IsBound() bool                        { return false }
func (o *UnresolvedOperation) IsComposable() bool                   { return false }

// UnresolvedEnumMember stands in for an enum member that could not be
// resolved.
type UnresolvedEnumMember struct {
	named
	unresolved
}

// NewUnresolvedEnumMember creates an enum member placeholder.
func NewUnresolvedEnumMember(name string, loc edmErrors.Location) *UnresolvedEnumMember {
	m := &UnresolvedEnumMember{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedEnumMember, name)}
	m.name, m.loc = name, loc
	return m
}

func (m *UnresolvedEnumMember) DeclaringType() edm.EnumType { return nil }
func (m *UnresolvedEnumMember) Value() int64                { return 0 }

// UnresolvedEntitySet stands in for a navigation source that could not be
// resolved.
type UnresolvedEntitySet struct {
	named
	unresolved
}

// NewUnresolvedEntitySet creates an entity set placeholder.
func NewUnresolvedEntitySet(name string, loc edmErrors.Location) *UnresolvedEntitySet {
	s := &UnresolvedEntitySet{unresolved: newUnresolved(loc, edmErrors.BadUnresolvedEntitySet, name)}
	s.name, s.loc = name, loc
	return s
}

func (s *UnresolvedEntitySet) ContainerElementKind() edm.ContainerElementKind {
	return edm.ContainerElementKindEntitySet
}
func (s *UnresolvedEntitySet) Container() edm.EntityContainer { return nil }
func (s *UnresolvedEntitySet) EntityType() edm.EntityType     { return nil }
func (s *UnresolvedEntitySet) IncludeInServiceDocument() bool { return false }

func (s *UnresolvedEntitySet) NavigationPropertyBindings() []edm.NavigationPropertyBinding {
	return nil
}
