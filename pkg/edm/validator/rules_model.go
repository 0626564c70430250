package validator

import (
	"strings"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/typecheck"
)

// ModelDuplicateSchemaElementName reports schema elements sharing a
// qualified name, within the model or with a referenced model. Operations
// may be overloaded.
var ModelDuplicateSchemaElementName = NewRule("ModelDuplicateSchemaElementName",
	func(ctx *Context, m edm.Model) {
		declared := make(map[string]edm.SchemaElement)
		for _, el := range m.SchemaElements() {
			if edm.IsNil(el) || ctx.IsBad(el) {
				continue
			}
			name := edm.FullName(el)
			_, isOperation := el.(edm.Operation)
			if prev, ok := declared[name]; ok {
				if _, prevIsOperation := prev.(edm.Operation); !(isOperation && prevIsOperation) {
					ctx.Report(el.Location(), edmErrors.AlreadyDefined, name)
				}
				continue
			}
			declared[name] = el
			if !isOperation && definedInReferences(m, name) {
				ctx.Report(el.Location(), edmErrors.AlreadyDefined, name)
			}
		}
	})

func definedInReferences(m edm.Model, name string) bool {
	for _, ref := range m.ReferencedModels() {
		if edm.IsNil(ref) {
			continue
		}
		if t := ref.FindType(name); !edm.IsNil(t) && !edm.IsBuiltin(t) {
			return true
		}
		if !edm.IsNil(ref.FindTerm(name)) || !edm.IsNil(ref.FindEntityContainer(name)) {
			return true
		}
	}
	return false
}

// ModelBoundFunctionOverloadsMustHaveSameReturnType reports bound functions
// with the same name and binding type that disagree on their return type.
var ModelBoundFunctionOverloadsMustHaveSameReturnType = NewRule("ModelBoundFunctionOverloadsMustHaveSameReturnType",
	func(ctx *Context, m edm.Model) {
		first := make(map[string]edm.Function)
		reported := make(map[string]bool)
		for _, el := range m.SchemaElements() {
			fn, ok := el.(edm.Function)
			if !ok || edm.IsNil(fn) || ctx.IsBad(fn) || !fn.IsBound() || len(fn.Parameters()) == 0 {
				continue
			}
			binding := fn.Parameters()[0]
			if edm.IsNil(binding) {
				continue
			}
			key := edm.FullName(fn) + "(" + edm.TypeReferenceName(binding.Type()) + ")"
			prev, seen := first[key]
			if !seen {
				first[key] = fn
				continue
			}
			if reported[key] || sameReturnType(prev.ReturnType(), fn.ReturnType()) {
				continue
			}
			reported[key] = true
			ctx.Report(fn.Location(), edmErrors.BoundFunctionOverloadsMustHaveSameReturnType, edm.FullName(fn))
		}
	})

func sameReturnType(a, b edm.TypeReference) bool {
	if edm.IsNil(a) || edm.IsNil(b) {
		return edm.IsNil(a) == edm.IsNil(b)
	}
	return typecheck.IsEquivalentTo(a.Definition(), b.Definition())
}

// ModelDuplicateVocabularyAnnotation reports annotations applying the same
// term with the same qualifier to the same target.
var ModelDuplicateVocabularyAnnotation = NewRule("VocabularyAnnotationDuplicate",
	func(ctx *Context, m edm.Model) {
		type annotationKey struct {
			target    edm.Element
			term      edm.Term
			qualifier string
		}
		seen := make(map[annotationKey]bool)
		for _, a := range m.VocabularyAnnotations() {
			if edm.IsNil(a) || ctx.IsBad(a) {
				continue
			}
			key := annotationKey{target: a.Target(), term: a.Term(), qualifier: a.Qualifier()}
			if seen[key] {
				ctx.Report(a.Location(), edmErrors.DuplicateAnnotation, edm.FullName(a.Term()), a.Qualifier())
				continue
			}
			seen[key] = true
		}
	})

// EntityContainerDuplicateEntityContainerMemberName reports container
// members sharing a name. Function imports may be overloaded.
var EntityContainerDuplicateEntityContainerMemberName = NewRule("EntityContainerDuplicateEntityContainerMemberName",
	func(ctx *Context, c edm.EntityContainer) {
		members := make(map[string]edm.EntityContainerElement)
		for _, el := range c.Elements() {
			if edm.IsNil(el) {
				continue
			}
			prev, ok := members[el.Name()]
			if !ok {
				members[el.Name()] = el
				continue
			}
			if isFunctionImport(prev) && isFunctionImport(el) {
				continue
			}
			ctx.Report(el.Location(), edmErrors.DuplicateEntityContainerMemberName, edm.FullName(c), el.Name())
		}
	})

func isFunctionImport(el edm.EntityContainerElement) bool {
	return el.ContainerElementKind() == edm.ContainerElementKindFunctionImport
}

// NavigationPropertyBindingTargetTypeMismatch reports bindings whose target
// holds entities unrelated to the navigation property's entity type.
var NavigationPropertyBindingTargetTypeMismatch = NewRule("NavigationPropertyBindingTargetTypeMismatch",
	func(ctx *Context, b edm.NavigationPropertyBinding) {
		nav, target := b.NavigationProperty(), b.Target()
		if ctx.IsBad(nav) || ctx.IsBad(target) {
			return
		}
		want, _ := edm.EntityTypeOf(nav.Type())
		got := target.EntityType()
		if edm.IsNil(want) || edm.IsNil(got) || ctx.IsBad(want) || ctx.IsBad(got) {
			return
		}
		if typecheck.IsOrInheritsFrom(got, want) || typecheck.IsOrInheritsFrom(want, got) {
			return
		}
		ctx.Report(b.Location(), edmErrors.InvalidNavigationPropertyBindingTarget, target.Name(), nav.Name(), edm.FullName(want))
	})

// NavigationPropertyBindingPathMustResolve reports binding paths that do
// not lead to the bound navigation property. Segments containing a dot are
// type casts.
var NavigationPropertyBindingPathMustResolve = NewRule("NavigationPropertyBindingPathMustResolve",
	func(ctx *Context, s edm.NavigationSource) {
		for _, b := range s.NavigationPropertyBindings() {
			if edm.IsNil(b) || ctx.IsBad(b) || ctx.IsBad(b.NavigationProperty()) {
				continue
			}
			if resolveBindingPath(ctx.Model(), s.EntityType(), b.Path()) != b.NavigationProperty() {
				ctx.Report(b.Location(), edmErrors.UnresolvedNavigationPropertyBindingPath, b.Path(), s.Name())
			}
		}
	})

// resolveBindingPath follows path from start and returns the navigation
// property it ends in, or nil.
func resolveBindingPath(model edm.Model, start edm.StructuredType, path string) edm.NavigationProperty {
	current := start
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if edm.IsNil(current) || seg == "" {
			return nil
		}
		if strings.Contains(seg, ".") {
			cast, ok := model.FindType(seg).(edm.StructuredType)
			if !ok || edm.IsNil(cast) || (cast != current && !edm.InheritsFrom(cast, current)) {
				return nil
			}
			current = cast
			continue
		}
		prop := edm.FindProperty(current, seg)
		if edm.IsNil(prop) {
			return nil
		}
		if i == len(segments)-1 {
			nav, _ := prop.(edm.NavigationProperty)
			return nav
		}
		current = elementStructuredType(prop.Type())
	}
	return nil
}

// elementStructuredType returns the structured type of tr or of its
// collection element type.
func elementStructuredType(tr edm.TypeReference) edm.StructuredType {
	if edm.IsNil(tr) {
		return nil
	}
	if coll, ok := tr.Definition().(edm.CollectionType); ok {
		return edm.StructuredTypeOf(coll.ElementType())
	}
	return edm.StructuredTypeOf(tr)
}

// OperationImportCannotImportBoundOperation reports imports of bound
// operations.
var OperationImportCannotImportBoundOperation = NewRule("OperationImportCannotImportBoundOperation",
	func(ctx *Context, imp edm.OperationImport) {
		op := imp.Operation()
		if ctx.IsBad(op) {
			return
		}
		if op.IsBound() {
			ctx.Report(imp.Location(), edmErrors.OperationImportCannotImportBoundOperation, imp.Name(), edm.FullName(op))
		}
	})
