package validator

import (
	"strings"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/typecheck"
)

// StructuredTypePropertyNameAlreadyDefined reports declared properties whose
// name is already used by an inherited or earlier declared property.
var StructuredTypePropertyNameAlreadyDefined = NewRule("StructuredTypePropertyNameAlreadyDefined",
	func(ctx *Context, t edm.StructuredType) {
		declared := make(map[edm.Property]bool)
		for _, p := range t.DeclaredProperties() {
			declared[p] = true
		}
		names := make(map[string]bool)
		for _, p := range edm.AllProperties(t) {
			if edm.IsNil(p) {
				continue
			}
			if names[p.Name()] {
				if declared[p] {
					ctx.Report(p.Location(), edmErrors.PropertyNameAlreadyDefined, p.Name())
				}
				continue
			}
			names[p.Name()] = true
		}
	})

var StructuredTypeInvalidMemberNameMatchesTypeName = NewRule("StructuredTypeInvalidMemberNameMatchesTypeName",
	func(ctx *Context, t edm.StructuredType) {
		named, ok := t.(edm.NamedElement)
		if !ok {
			return
		}
		for _, p := range t.DeclaredProperties() {
			if !edm.IsNil(p) && p.Name() == named.Name() {
				ctx.Report(p.Location(), edmErrors.PropertyNameMatchesDeclaringType, p.Name())
			}
		}
	})

var StructuredTypeBaseTypeMustBeSameKindAsDerivedKind = NewRule("StructuredTypeBaseTypeMustBeSameKindAsDerivedKind",
	func(ctx *Context, t edm.StructuredType) {
		base := t.BaseType()
		if edm.IsNil(base) || ctx.IsBad(base) {
			return
		}
		if base.TypeKind() != t.TypeKind() {
			ctx.Report(t.Location(), edmErrors.BaseTypeKindMismatch, edm.TypeName(t), edm.TypeName(base), base.TypeKind())
		}
	})

// StructuredTypePropertyNameCaseInsensitiveConflict reports declared
// properties whose names differ from another property only in case.
var StructuredTypePropertyNameCaseInsensitiveConflict = NewRule("StructuredTypePropertyNameCaseInsensitiveConflict",
	func(ctx *Context, t edm.StructuredType) {
		declared := make(map[edm.Property]bool)
		for _, p := range t.DeclaredProperties() {
			declared[p] = true
		}
		byFold := make(map[string]string)
		for _, p := range edm.AllProperties(t) {
			if edm.IsNil(p) {
				continue
			}
			folded := strings.ToLower(p.Name())
			prev, ok := byFold[folded]
			if !ok {
				byFold[folded] = p.Name()
				continue
			}
			if prev != p.Name() && declared[p] {
				ctx.Report(p.Location(), edmErrors.CaseInsensitivePropertyNameConflict, prev, p.Name())
			}
		}
	})

var EntityTypeKeyMissingOnEntityType = NewRule("EntityTypeKeyMissingOnEntityType",
	func(ctx *Context, t edm.EntityType) {
		if len(t.DeclaredKey()) == 0 && edm.IsNil(t.BaseType()) && !t.IsAbstract() {
			ctx.Report(t.Location(), edmErrors.KeyMissingOnEntityType, edm.FullName(t))
		}
	})

var EntityTypeDuplicatePropertyNameSpecifiedInEntityKey = NewRule("EntityTypeDuplicatePropertyNameSpecifiedInEntityKey",
	func(ctx *Context, t edm.EntityType) {
		seen := make(map[string]bool)
		for _, p := range t.DeclaredKey() {
			if seen[p.Name()] {
				ctx.Report(t.Location(), edmErrors.DuplicatePropertyNameSpecifiedInEntityKey, edm.FullName(t), p.Name())
				continue
			}
			seen[p.Name()] = true
		}
	})

var EntityTypeInvalidKeyNullablePart = NewRule("EntityTypeInvalidKeyNullablePart",
	func(ctx *Context, t edm.EntityType) {
		for _, p := range t.DeclaredKey() {
			if tr := p.Type(); !edm.IsNil(tr) && tr.IsNullable() {
				ctx.Report(p.Location(), edmErrors.InvalidKeyNullablePart, p.Name(), edm.FullName(t))
			}
		}
	})

var EntityTypeEntityKeyMustBeScalar = NewRule("EntityTypeEntityKeyMustBeScalar",
	func(ctx *Context, t edm.EntityType) {
		for _, p := range t.DeclaredKey() {
			tr := p.Type()
			if edm.IsNil(tr) || ctx.IsBad(p) || ctx.IsBad(tr) || ctx.IsBad(tr.Definition()) {
				continue
			}
			if !edm.IsScalar(tr) {
				ctx.Report(p.Location(), edmErrors.EntityKeyMustBeScalar, p.Name(), edm.FullName(t))
			}
		}
	})

var EntityTypeKeyPropertyMustBelongToEntity = NewRule("EntityTypeKeyPropertyMustBelongToEntity",
	func(ctx *Context, t edm.EntityType) {
		for _, p := range t.DeclaredKey() {
			if ctx.IsBad(p) {
				continue
			}
			if edm.FindProperty(t, p.Name()) != edm.Property(p) {
				ctx.Report(p.Location(), edmErrors.InvalidKey, p.Name(), edm.FullName(t))
			}
		}
	})

var EntityTypeKeyRedefinedInDerivedType = NewRule("EntityTypeKeyRedefinedInDerivedType",
	func(ctx *Context, t edm.EntityType) {
		if len(t.DeclaredKey()) == 0 {
			return
		}
		base, ok := t.BaseType().(edm.EntityType)
		if !ok || edm.IsNil(base) || ctx.IsBad(base) {
			return
		}
		if len(edm.Key(base)) > 0 {
			ctx.Report(t.Location(), edmErrors.BaseTypeKeyRedefined, edm.FullName(t), edm.FullName(base))
		}
	})

var EnumTypeEnumMemberNameAlreadyDefined = NewRule("EnumTypeEnumMemberNameAlreadyDefined",
	func(ctx *Context, t edm.EnumType) {
		seen := make(map[string]bool)
		for _, m := range t.Members() {
			if seen[m.Name()] {
				ctx.Report(m.Location(), edmErrors.EnumMemberNameAlreadyDefined, edm.FullName(t), m.Name())
				continue
			}
			seen[m.Name()] = true
		}
	})

var EnumMustHaveIntegerUnderlyingType = NewRule("EnumMustHaveIntegerUnderlyingType",
	func(ctx *Context, t edm.EnumType) {
		u := t.UnderlyingType()
		if ctx.IsBad(u) {
			return
		}
		if !u.PrimitiveKind().IsIntegral() {
			ctx.Report(t.Location(), edmErrors.EnumMustHaveIntegerUnderlyingType, edm.FullName(t), edm.FullName(u))
		}
	})

var EnumMemberValueMustFitUnderlyingType = NewRule("EnumMemberValueMustFitUnderlyingType",
	func(ctx *Context, m edm.EnumMember) {
		t := m.DeclaringType()
		if ctx.IsBad(t) || edm.IsNil(t.UnderlyingType()) {
			return
		}
		kind := t.UnderlyingType().PrimitiveKind()
		if kind.IsIntegral() && !typecheck.IntegerFits(m.Value(), kind) {
			ctx.Report(m.Location(), edmErrors.EnumMemberValueOutOfRange, m.Value(), m.Name(), edm.FullName(t.UnderlyingType()))
		}
	})

// StructuralPropertyInvalidPropertyType reports structural properties typed
// as entities or entity references, or collections of those.
var StructuralPropertyInvalidPropertyType = NewRule("StructuralPropertyInvalidPropertyType",
	func(ctx *Context, p edm.StructuralProperty) {
		if p.PropertyKind() != edm.PropertyKindStructural {
			return
		}
		def := p.Type().Definition()
		if ctx.IsBad(def) {
			return
		}
		if coll, ok := def.(edm.CollectionType); ok && def.TypeKind() == edm.TypeKindCollection {
			if edm.IsNil(coll.ElementType()) {
				return
			}
			def = coll.ElementType().Definition()
		}
		if edm.IsNil(def) {
			return
		}
		switch def.TypeKind() {
		case edm.TypeKindEntity, edm.TypeKindEntityReference:
			ctx.Report(p.Location(), edmErrors.InvalidPropertyType, p.Name())
		}
	})
