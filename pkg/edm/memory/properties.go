package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// StructuralProperty is a data-carrying property.
type StructuralProperty struct {
	named
	typ          edm.TypeReference
	declaring    edm.StructuredType
	defaultValue string
}

// NewStructuralProperty creates a property declared by declaring. The
// property is not added to the type.
func NewStructuralProperty(declaring edm.StructuredType, name string, typ edm.TypeReference) *StructuralProperty {
	p := &StructuralProperty{typ: orNil(typ), declaring: orNil(declaring)}
	p.name = name
	return p
}

func (p *StructuralProperty) PropertyKind() edm.PropertyKind    { return edm.PropertyKindStructural }
func (p *StructuralProperty) Type() edm.TypeReference           { return p.typ }
func (p *StructuralProperty) DeclaringType() edm.StructuredType { return p.declaring }
func (p *StructuralProperty) DefaultValueString() string        { return p.defaultValue }

// SetDefaultValue sets the default value literal.
func (p *StructuralProperty) SetDefaultValue(v string) { p.defaultValue = v }

// NavigationPropertyInfo describes a navigation property to create.
type NavigationPropertyInfo struct {
	Name           string
	Target         edm.EntityType
	Collection     bool
	Nullable       bool
	ContainsTarget bool
	OnDelete       edm.OnDeleteAction
	Constraints    []edm.ReferentialConstraint
}

// NavigationProperty is a property navigating to an entity type.
type NavigationProperty struct {
	named
	typ            edm.TypeReference
	declaring      edm.StructuredType
	partner        edm.NavigationProperty
	containsTarget bool
	onDelete       edm.OnDeleteAction
	constraints    []edm.ReferentialConstraint
}

// NewNavigationProperty creates a navigation property declared by declaring.
// The property is not added to the type.
func NewNavigationProperty(declaring edm.StructuredType, info NavigationPropertyInfo) *NavigationProperty {
	target := NewTypeReference(orNil(info.Target), info.Nullable && !info.Collection)
	var typ edm.TypeReference = target
	if info.Collection {
		typ = NewCollectionReference(target)
	}
	p := &NavigationProperty{
		typ:            typ,
		declaring:      orNil(declaring),
		containsTarget: info.ContainsTarget,
		onDelete:       info.OnDelete,
		constraints:    info.Constraints,
	}
	p.name = info.Name
	return p
}

func (p *NavigationProperty) PropertyKind() edm.PropertyKind    { return edm.PropertyKindNavigation }
func (p *NavigationProperty) Type() edm.TypeReference           { return p.typ }
func (p *NavigationProperty) DeclaringType() edm.StructuredType { return p.declaring }
func (p *NavigationProperty) Partner() edm.NavigationProperty   { return p.partner }
func (p *NavigationProperty) ContainsTarget() bool              { return p.containsTarget }
func (p *NavigationProperty) OnDelete() edm.OnDeleteAction      { return p.onDelete }

func (p *NavigationProperty) ReferentialConstraints() []edm.ReferentialConstraint {
	return p.constraints
}

// SetType replaces the type reference.
func (p *NavigationProperty) SetType(typ edm.TypeReference) { p.typ = orNil(typ) }

// SetPartner sets the partner of p only.
func (p *NavigationProperty) SetPartner(partner edm.NavigationProperty) {
	p.partner = orNil(partner)
}

// AddConstraint appends a referential constraint.
func (p *NavigationProperty) AddConstraint(dependent, principal edm.StructuralProperty) {
	p.constraints = append(p.constraints, edm.ReferentialConstraint{Dependent: dependent, Principal: principal})
}

// Pair makes a and b partners of each other.
func Pair(a, b *NavigationProperty) {
	a.SetPartner(b)
	b.SetPartner(a)
}
