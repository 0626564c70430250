package validator

import (
	"slices"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/typecheck"
)

// VocabularyAnnotationInaccessibleTerm reports annotations whose term the
// model cannot resolve.
var VocabularyAnnotationInaccessibleTerm = NewRule("VocabularyAnnotationInaccessibleTerm",
	func(ctx *Context, a edm.VocabularyAnnotation) {
		term := a.Term()
		if ctx.IsBad(term) {
			return
		}
		name := edm.FullName(term)
		if !edm.IsNil(ctx.Model().FindTerm(name)) {
			return
		}
		err := ctx.Report(a.Location(), edmErrors.BadUnresolvedTerm, name)
		if s := edmErrors.SuggestName(name, termNames(ctx.Model())); s != "" {
			err.WithExtension(edmErrors.ExtensionSuggestion, s)
		}
	})

func termNames(m edm.Model) []string {
	var names []string
	for _, el := range m.SchemaElements() {
		if t, ok := el.(edm.Term); ok && !edm.IsNil(t) {
			names = append(names, edm.FullName(t))
		}
	}
	return names
}

// VocabularyAnnotationAssertCorrectExpressionType checks the annotation
// value against the term type. Paths resolve against the target.
var VocabularyAnnotationAssertCorrectExpressionType = NewRule("VocabularyAnnotationAssertCorrectExpressionType",
	func(ctx *Context, a edm.VocabularyAnnotation) {
		term := a.Term()
		if ctx.IsBad(term) || ctx.IsBad(a.Value()) || edm.IsNil(term.Type()) || ctx.IsBad(term.Type()) {
			return
		}
		ctx.AddErrors(ctx.Checker().TryCast(a.Value(), term.Type(), bindingContext(a.Target()), false)...)
	})

// bindingContext returns the structured type paths in an annotation on
// target are evaluated against.
func bindingContext(target edm.Element) edm.StructuredType {
	switch t := target.(type) {
	case edm.StructuredType:
		return t
	case edm.Property:
		return t.DeclaringType()
	case edm.NavigationSource:
		if et := t.EntityType(); !edm.IsNil(et) {
			return et
		}
	case edm.Term:
		return elementStructuredType(t.Type())
	case edm.OperationParameter:
		return elementStructuredType(t.Type())
	}
	return nil
}

// TargetKind returns the name an annotation term uses in AppliesTo for the
// kind of target, or "" when the target has no such name.
func TargetKind(target edm.Element) string {
	switch t := target.(type) {
	case edm.EntityType:
		if t.TypeKind() == edm.TypeKindEntity {
			return "EntityType"
		}
		return "ComplexType"
	case edm.ComplexType:
		return "ComplexType"
	case edm.EnumType:
		return "EnumType"
	case edm.TypeDefinition:
		return "TypeDefinition"
	case edm.NavigationProperty:
		return "NavigationProperty"
	case edm.Property:
		return "Property"
	case edm.Term:
		return "Term"
	case edm.Function:
		return "Function"
	case edm.Operation:
		return "Action"
	case edm.EntityContainer:
		return "EntityContainer"
	case edm.OperationImport:
		if t.ContainerElementKind() == edm.ContainerElementKindFunctionImport {
			return "FunctionImport"
		}
		return "ActionImport"
	case edm.EntitySet:
		if t.ContainerElementKind() == edm.ContainerElementKindSingleton {
			return "Singleton"
		}
		return "EntitySet"
	case edm.Singleton:
		return "Singleton"
	case edm.OperationParameter:
		return "Parameter"
	case edm.EnumMember:
		return "Member"
	case edm.VocabularyAnnotation:
		return "Annotation"
	case edm.TypeReference:
		return "TypeReference"
	}
	return ""
}

var VocabularyAnnotationTermAppliesToTarget = NewRule("VocabularyAnnotationTermAppliesToTarget",
	func(ctx *Context, a edm.VocabularyAnnotation) {
		term := a.Term()
		if ctx.IsBad(term) || len(term.AppliesTo()) == 0 {
			return
		}
		kind := TargetKind(a.Target())
		if kind == "" || slices.Contains(term.AppliesTo(), kind) {
			return
		}
		ctx.Report(a.Location(), edmErrors.AnnotationNotApplicableToTarget, edm.FullName(term), kind)
	})

var IfExpressionAssertCorrectTestType = NewRule("IfExpressionAssertCorrectTestType",
	func(ctx *Context, e edm.IfExpression) {
		test := e.TestExpression()
		if ctx.IsBad(test) {
			return
		}
		ctx.AddErrors(ctx.Checker().TryCast(test, typecheck.PrimitiveReference(edm.PrimitiveBoolean, false), nil, false)...)
	})

var CollectionExpressionAllElementsCorrectType = NewRule("CollectionExpressionAllElementsCorrectType",
	func(ctx *Context, e edm.CollectionExpression) {
		declared := e.DeclaredType()
		if edm.IsNil(declared) || ctx.IsBad(declared) || ctx.IsBad(declared.Definition()) {
			return
		}
		coll, ok := declared.Definition().(edm.CollectionType)
		if !ok || edm.IsNil(coll.ElementType()) {
			return
		}
		for _, el := range e.Elements() {
			if ctx.IsBad(el) {
				continue
			}
			ctx.AddErrors(ctx.Checker().TryCast(el, coll.ElementType(), nil, false)...)
		}
	})

var RecordExpressionPropertiesMatchType = NewRule("RecordExpressionPropertiesMatchType",
	func(ctx *Context, e edm.RecordExpression) {
		declared := e.DeclaredType()
		if edm.IsNil(declared) || ctx.IsBad(declared) || ctx.IsBad(declared.Definition()) {
			return
		}
		ctx.AddErrors(ctx.Checker().TryCastRecordAsType(e, declared, nil, false)...)
	})

var ApplyExpressionArgumentsMatchParameters = NewRule("ApplyExpressionArgumentsMatchParameters",
	func(ctx *Context, e edm.ApplyExpression) {
		fn := e.AppliedFunction()
		if ctx.IsBad(fn) {
			return
		}
		params, args := fn.Parameters(), e.Arguments()
		if len(params) != len(args) {
			ctx.Report(e.Location(), edmErrors.IncorrectNumberOfArguments, edm.FullName(fn), len(params), len(args))
			return
		}
		for i, arg := range args {
			if edm.IsNil(params[i]) || edm.IsNil(params[i].Type()) || ctx.IsBad(arg) {
				continue
			}
			ctx.AddErrors(ctx.Checker().TryCast(arg, params[i].Type(), nil, false)...)
		}
	})

// ElementDirectValueAnnotationFullNameMustBeUnique reports direct value
// annotations on one element sharing namespace and name.
var ElementDirectValueAnnotationFullNameMustBeUnique = NewRule("ElementDirectValueAnnotationFullNameMustBeUnique",
	func(ctx *Context, el edm.Element) {
		annotations := ctx.Model().DirectValueAnnotations(el)
		if len(annotations) < 2 {
			return
		}
		seen := make(map[string]bool)
		for _, a := range annotations {
			if edm.IsNil(a) {
				continue
			}
			full := a.NamespaceURI() + ":" + a.Name()
			if seen[full] {
				ctx.Report(a.Location(), edmErrors.DuplicateAnnotation, full, "")
				continue
			}
			seen[full] = true
		}
	})
