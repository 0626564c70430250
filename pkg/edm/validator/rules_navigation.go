package validator

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/typecheck"
)

// navigationTarget returns the entity type a navigation property points at
// and whether it is collection valued.
func navigationTarget(ctx *Context, p edm.NavigationProperty) (edm.EntityType, bool) {
	tr := p.Type()
	if edm.IsNil(tr) || ctx.IsBad(tr) || ctx.IsBad(tr.Definition()) {
		return nil, false
	}
	return edm.EntityTypeOf(tr)
}

var NavigationPropertyTypeMustBeEntity = NewRule("NavigationPropertyTypeMustBeEntity",
	func(ctx *Context, p edm.NavigationProperty) {
		tr := p.Type()
		if ctx.IsBad(tr.Definition()) {
			return
		}
		if target, _ := edm.EntityTypeOf(tr); edm.IsNil(target) {
			ctx.Report(p.Location(), edmErrors.InvalidNavigationPropertyType, p.Name())
		}
	})

// NavigationPropertyInvalidOperationMultipleEndsInAssociation reports
// partners that both declare an OnDelete action.
var NavigationPropertyInvalidOperationMultipleEndsInAssociation = NewRule("NavigationPropertyInvalidOperationMultipleEndsInAssociation",
	func(ctx *Context, p edm.NavigationProperty) {
		partner := p.Partner()
		if edm.IsNil(partner) {
			return
		}
		if p.OnDelete() != edm.OnDeleteNone && partner.OnDelete() != edm.OnDeleteNone {
			ctx.Report(p.Location(), edmErrors.InvalidAction, p.Name())
		}
	})

// isRecursiveContainment reports whether p contains entities of its own
// declaring type (or a base of it).
func isRecursiveContainment(ctx *Context, p edm.NavigationProperty) bool {
	if !p.ContainsTarget() {
		return false
	}
	target, _ := navigationTarget(ctx, p)
	if edm.IsNil(target) || edm.IsNil(p.DeclaringType()) {
		return false
	}
	return typecheck.IsOrInheritsFrom(p.DeclaringType(), target)
}

var NavigationPropertyWithRecursiveContainmentTargetMustBeOptional = NewRule("NavigationPropertyWithRecursiveContainmentTargetMustBeOptional",
	func(ctx *Context, p edm.NavigationProperty) {
		if !isRecursiveContainment(ctx, p) {
			return
		}
		if !edm.IsCollection(p.Type()) && !p.Type().IsNullable() {
			ctx.Report(p.Location(), edmErrors.NavigationPropertyWithRecursiveContainmentTargetMustBeOptional, p.Name())
		}
	})

var NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne = NewRule("NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne",
	func(ctx *Context, p edm.NavigationProperty) {
		partner := p.Partner()
		if edm.IsNil(partner) || edm.IsNil(partner.Type()) || !isRecursiveContainment(ctx, p) {
			return
		}
		if edm.IsCollection(partner.Type()) || !partner.Type().IsNullable() {
			ctx.Report(p.Location(), edmErrors.NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne, p.Name())
		}
	})

// NavigationPropertyPartnerTypeMismatch reports partners that do not point
// back at the declaring type of the property.
var NavigationPropertyPartnerTypeMismatch = NewRule("NavigationPropertyPartnerTypeMismatch",
	func(ctx *Context, p edm.NavigationProperty) {
		partner := p.Partner()
		declaring := p.DeclaringType()
		if edm.IsNil(partner) || ctx.IsBad(partner) || edm.IsNil(declaring) {
			return
		}
		back, _ := navigationTarget(ctx, partner)
		if edm.IsNil(back) {
			return
		}
		if typecheck.IsOrInheritsFrom(declaring, back) || typecheck.IsOrInheritsFrom(back, declaring) {
			return
		}
		ctx.Report(p.Location(), edmErrors.NavigationPartnerTypeMismatch, partner.Name(), p.Name(), edm.TypeName(declaring))
	})

var NavigationPropertyContainmentOnBothEnds = NewRule("NavigationPropertyContainmentOnBothEnds",
	func(ctx *Context, p edm.NavigationProperty) {
		partner := p.Partner()
		if edm.IsNil(partner) {
			return
		}
		if p.ContainsTarget() && partner.ContainsTarget() {
			ctx.Report(p.Location(), edmErrors.ContainmentOnBothEnds, p.Name(), partner.Name())
		}
	})

// NavigationPropertyDependentPropertiesMustBelongToDependentEntity reports
// dependent properties that are not properties of the declaring type.
var NavigationPropertyDependentPropertiesMustBelongToDependentEntity = NewRule("NavigationPropertyDependentPropertiesMustBelongToDependentEntity",
	func(ctx *Context, p edm.NavigationProperty) {
		declaring := p.DeclaringType()
		for _, c := range p.ReferentialConstraints() {
			if ctx.IsBad(c.Dependent) {
				continue
			}
			if edm.FindProperty(declaring, c.Dependent.Name()) != edm.Property(c.Dependent) {
				ctx.Report(p.Location(), edmErrors.DependentPropertiesMustBelongToDependentEntity,
					c.Dependent.Name(), p.Name(), edm.TypeName(declaring))
			}
		}
	})

// NavigationPropertyPrincipalPropertiesMustBelongToPrincipalEntity reports
// principal properties that are not properties of the target type.
var NavigationPropertyPrincipalPropertiesMustBelongToPrincipalEntity = NewRule("NavigationPropertyPrincipalPropertiesMustBelongToPrincipalEntity",
	func(ctx *Context, p edm.NavigationProperty) {
		target, _ := navigationTarget(ctx, p)
		if edm.IsNil(target) {
			return
		}
		for _, c := range p.ReferentialConstraints() {
			if ctx.IsBad(c.Principal) {
				continue
			}
			if edm.FindProperty(target, c.Principal.Name()) != edm.Property(c.Principal) {
				ctx.Report(p.Location(), edmErrors.PrincipalPropertiesMustBelongToPrincipalEntity,
					c.Principal.Name(), p.Name(), edm.FullName(target))
			}
		}
	})

var NavigationPropertyTypeMismatchRelationshipConstraint = NewRule("NavigationPropertyTypeMismatchRelationshipConstraint",
	func(ctx *Context, p edm.NavigationProperty) {
		for _, c := range p.ReferentialConstraints() {
			if ctx.IsBad(c.Dependent) || ctx.IsBad(c.Principal) {
				continue
			}
			dt, pt := c.Dependent.Type(), c.Principal.Type()
			if edm.IsNil(dt) || edm.IsNil(pt) || ctx.IsBad(dt.Definition()) || ctx.IsBad(pt.Definition()) {
				continue
			}
			if !typecheck.IsEquivalentTo(dt.Definition(), pt.Definition()) {
				ctx.Report(p.Location(), edmErrors.TypeMismatchRelationshipConstraint,
					c.Dependent.Name(), c.Principal.Name(), p.Name())
			}
		}
	})
