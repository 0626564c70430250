package validator

import (
	"fmt"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// structuralChecks is the static capability table. Order matters only for
// the order in which errors on a single node are reported.
var structuralChecks = []capabilityCheck{
	structural("NamedElement", checkNamedElement),
	structural("SchemaElement", checkSchemaElement),
	structural("EntityContainer", checkEntityContainer),
	structural("EntityContainerElement", checkEntityContainerElement),
	structural("NavigationSource", checkNavigationSource),
	structural("NavigationPropertyBinding", checkNavigationPropertyBinding),
	structural("OperationImport", checkOperationImport),
	structural("Type", checkType),
	structural("PrimitiveType", checkPrimitiveType),
	structural("StructuredType", checkStructuredType),
	structural("EntityType", checkEntityType),
	structural("EnumType", checkEnumType),
	structural("EnumMember", checkEnumMember),
	structural("TypeDefinition", checkTypeDefinition),
	structural("CollectionType", checkCollectionType),
	structural("EntityReferenceType", checkEntityReferenceType),
	structural("TypeReference", checkTypeReference),
	structural("Property", checkProperty),
	structural("NavigationProperty", checkNavigationProperty),
	structural("Operation", checkOperation),
	structural("OperationParameter", checkOperationParameter),
	structural("Term", checkTerm),
	structural("VocabularyAnnotation", checkVocabularyAnnotation),
	structural("DirectValueAnnotation", checkDirectValueAnnotation),
	structural("Model", checkModel),
	structural("Value", checkValue),
	structural("CollectionValue", checkCollectionValue),
	structural("StructuredValue", checkStructuredValue),
	structural("PropertyValue", checkPropertyValue),
	structural("Expression", checkExpression),
	structural("IfExpression", checkIfExpression),
	structural("RecordExpression", checkRecordExpression),
	structural("PropertyConstructor", checkPropertyConstructor),
	structural("CollectionExpression", checkCollectionExpression),
	structural("EnumMemberExpression", checkEnumMemberExpression),
	structural("CastExpression", checkCastExpression),
	structural("ApplyExpression", checkApplyExpression),
	structural("LabeledExpression", checkLabeledExpression),
}

// describe names a node for messages.
func describe(n any) string {
	switch e := n.(type) {
	case edm.SchemaElement:
		if name := edm.FullName(e); name != "" {
			return fmt.Sprintf("'%s'", name)
		}
	case edm.NamedElement:
		if e.Name() != "" {
			return fmt.Sprintf("'%s'", e.Name())
		}
	}
	return fmt.Sprintf("a %T", n)
}

func is[T any](n any) bool {
	_, ok := n.(T)
	return ok
}

func locationOf(n edm.Element) edmErrors.Location {
	if edm.IsNil(n) {
		return edmErrors.Location{}
	}
	return n.Location()
}

func (r *checkResult) notNull(node edm.Element, property string, v any) bool {
	if edm.IsNil(v) {
		r.report(locationOf(node), edmErrors.InterfaceCriticalPropertyValueMustNotBeNull, property, describe(node))
		return false
	}
	return true
}

// notEmpty treats an empty string as a missing value.
func (r *checkResult) notEmpty(node edm.Element, property, v string) bool {
	if v == "" {
		r.report(locationOf(node), edmErrors.InterfaceCriticalPropertyValueMustNotBeNull, property, describe(node))
		return false
	}
	return true
}

func (r *checkResult) kindMismatch(node edm.Element, kind fmt.Stringer) {
	r.report(locationOf(node), edmErrors.InterfaceCriticalKindValueMismatch, kind.String(), describe(node))
}

func (r *checkResult) kindUnexpected(node edm.Element, kind fmt.Stringer, property string) {
	r.report(locationOf(node), edmErrors.InterfaceCriticalKindValueUnexpected, kind.String(), property)
}

// noNullElements reports a collection holding nil entries.
func noNullElements[T any](r *checkResult, node edm.Element, collection string, items []T) bool {
	for _, item := range items {
		if edm.IsNil(item) {
			r.report(locationOf(node), edmErrors.InterfaceCriticalEnumerableMustNotHaveNullElements, collection, describe(node))
			return false
		}
	}
	return true
}

func followAll[T any](r *checkResult, items []T) {
	for _, item := range items {
		r.follow(item)
	}
}

func referenceAll[T any](r *checkResult, items []T) {
	for _, item := range items {
		r.reference(item)
	}
}

func checkNamedElement(n edm.NamedElement, r *checkResult) {
	r.notEmpty(n, "Name", n.Name())
}

var schemaElementKindCapabilities = map[edm.SchemaElementKind]func(any) bool{
	edm.SchemaElementKindTypeDefinition:  is[edm.SchemaType],
	edm.SchemaElementKindTerm:            is[edm.Term],
	edm.SchemaElementKindAction:          is[edm.Operation],
	edm.SchemaElementKindFunction:        is[edm.Function],
	edm.SchemaElementKindEntityContainer: is[edm.EntityContainer],
}

func checkSchemaElement(n edm.SchemaElement, r *checkResult) {
	r.notEmpty(n, "Namespace", n.Namespace())
	kind := n.SchemaElementKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "SchemaElementKind")
		return
	}
	if implements, ok := schemaElementKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
}

func checkEntityContainer(n edm.EntityContainer, r *checkResult) {
	if noNullElements(r, n, "Elements", n.Elements()) {
		followAll(r, n.Elements())
	}
}

var containerElementKindCapabilities = map[edm.ContainerElementKind]func(any) bool{
	edm.ContainerElementKindEntitySet:      is[edm.EntitySet],
	edm.ContainerElementKindSingleton:      is[edm.Singleton],
	edm.ContainerElementKindActionImport:   is[edm.OperationImport],
	edm.ContainerElementKindFunctionImport: is[edm.OperationImport],
}

func checkEntityContainerElement(n edm.EntityContainerElement, r *checkResult) {
	kind := n.ContainerElementKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "ContainerElementKind")
	} else if implements, ok := containerElementKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
	if r.notNull(n, "Container", n.Container()) {
		r.reference(n.Container())
	}
}

func checkNavigationSource(n edm.NavigationSource, r *checkResult) {
	if r.notNull(n, "EntityType", n.EntityType()) {
		r.reference(n.EntityType())
	}
	if noNullElements(r, n, "NavigationPropertyBindings", n.NavigationPropertyBindings()) {
		followAll(r, n.NavigationPropertyBindings())
	}
}

func checkNavigationPropertyBinding(n edm.NavigationPropertyBinding, r *checkResult) {
	if r.notNull(n, "NavigationProperty", n.NavigationProperty()) {
		r.reference(n.NavigationProperty())
	}
	if r.notNull(n, "Target", n.Target()) {
		r.reference(n.Target())
	}
}

func checkOperationImport(n edm.OperationImport, r *checkResult) {
	if r.notNull(n, "Operation", n.Operation()) {
		r.reference(n.Operation())
	}
}

var typeKindCapabilities = map[edm.TypeKind]func(any) bool{
	edm.TypeKindPrimitive:       is[edm.PrimitiveType],
	edm.TypeKindEntity:          is[edm.EntityType],
	edm.TypeKindComplex:         is[edm.ComplexType],
	edm.TypeKindCollection:      is[edm.CollectionType],
	edm.TypeKindEntityReference: is[edm.EntityReferenceType],
	edm.TypeKindEnum:            is[edm.EnumType],
	edm.TypeKindTypeDefinition:  is[edm.TypeDefinition],
}

func checkType(n edm.Type, r *checkResult) {
	kind := n.TypeKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "TypeKind")
		return
	}
	if implements, ok := typeKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
}

func checkPrimitiveType(n edm.PrimitiveType, r *checkResult) {
	kind := n.PrimitiveKind()
	if !kind.IsDefined() || kind == edm.PrimitiveNone {
		r.kindUnexpected(n, kind, "PrimitiveKind")
	}
}

func checkStructuredType(n edm.StructuredType, r *checkResult) {
	if noNullElements(r, n, "DeclaredProperties", n.DeclaredProperties()) {
		followAll(r, n.DeclaredProperties())
	}

	base := n.BaseType()
	if edm.IsNil(base) {
		return
	}
	if cycle := baseTypeCycle(n); cycle != nil {
		for _, t := range cycle {
			if r.cycles.has(t) {
				r.abandon = true
				return
			}
		}
		for _, t := range cycle {
			r.cycles.add(t)
		}
		r.report(n.Location(), edmErrors.InterfaceCriticalCycleInTypeHierarchy, edm.TypeName(n))
		return
	}
	r.reference(base)
}

// baseTypeCycle follows the base type chain of t and returns the types that
// form a cycle, or nil when the chain ends.
func baseTypeCycle(t edm.StructuredType) []edm.Element {
	seen := map[edm.StructuredType]int{t: 0}
	chain := []edm.StructuredType{t}
	for b := t.BaseType(); !edm.IsNil(b); b = b.BaseType() {
		if i, ok := seen[b]; ok {
			cycle := make([]edm.Element, 0, len(chain)-i)
			for _, c := range chain[i:] {
				cycle = append(cycle, c)
			}
			return cycle
		}
		seen[b] = len(chain)
		chain = append(chain, b)
	}
	return nil
}

func checkEntityType(n edm.EntityType, r *checkResult) {
	if noNullElements(r, n, "DeclaredKey", n.DeclaredKey()) {
		referenceAll(r, n.DeclaredKey())
	}
}

func checkEnumType(n edm.EnumType, r *checkResult) {
	if r.notNull(n, "UnderlyingType", n.UnderlyingType()) {
		r.reference(n.UnderlyingType())
	}
	if noNullElements(r, n, "Members", n.Members()) {
		followAll(r, n.Members())
	}
}

func checkEnumMember(n edm.EnumMember, r *checkResult) {
	if r.notNull(n, "DeclaringType", n.DeclaringType()) {
		r.reference(n.DeclaringType())
	}
}

func checkTypeDefinition(n edm.TypeDefinition, r *checkResult) {
	// Enum types expose the same accessor and are checked above.
	if n.TypeKind() == edm.TypeKindEnum {
		return
	}
	if r.notNull(n, "UnderlyingType", n.UnderlyingType()) {
		r.reference(n.UnderlyingType())
	}
}

func checkCollectionType(n edm.CollectionType, r *checkResult) {
	if r.notNull(n, "ElementType", n.ElementType()) {
		r.follow(n.ElementType())
	}
}

func checkEntityReferenceType(n edm.EntityReferenceType, r *checkResult) {
	if r.notNull(n, "EntityType", n.EntityType()) {
		r.reference(n.EntityType())
	}
}

func checkTypeReference(n edm.TypeReference, r *checkResult) {
	def := n.Definition()
	if !r.notNull(n, "Definition", def) {
		return
	}
	if _, named := def.(edm.SchemaType); named {
		r.reference(def)
		return
	}
	r.follow(def)
}

var propertyKindCapabilities = map[edm.PropertyKind]func(any) bool{
	edm.PropertyKindStructural: is[edm.StructuralProperty],
	edm.PropertyKindNavigation: is[edm.NavigationProperty],
}

func checkProperty(n edm.Property, r *checkResult) {
	kind := n.PropertyKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "PropertyKind")
	} else if implements, ok := propertyKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
	if r.notNull(n, "Type", n.Type()) {
		r.follow(n.Type())
	}
	if r.notNull(n, "DeclaringType", n.DeclaringType()) {
		r.reference(n.DeclaringType())
	}
}

func checkNavigationProperty(n edm.NavigationProperty, r *checkResult) {
	if !n.OnDelete().IsDefined() {
		r.report(n.Location(), edmErrors.InterfaceCriticalEnumPropertyValueOutOfRange, n.OnDelete().String(), "OnDelete")
	}
	if partner := n.Partner(); !edm.IsNil(partner) {
		if back := partner.Partner(); !edm.IsNil(back) && back != edm.NavigationProperty(n) {
			r.report(n.Location(), edmErrors.InterfaceCriticalNavigationPartnerInvalid, n.Name())
		} else {
			r.follow(partner)
		}
	}
	for _, c := range n.ReferentialConstraints() {
		if r.notNull(n, "ReferentialConstraint.Dependent", c.Dependent) {
			r.reference(c.Dependent)
		}
		if r.notNull(n, "ReferentialConstraint.Principal", c.Principal) {
			r.reference(c.Principal)
		}
	}
}

func checkOperation(n edm.Operation, r *checkResult) {
	if noNullElements(r, n, "Parameters", n.Parameters()) {
		followAll(r, n.Parameters())
	}
	r.follow(n.ReturnType())
}

func checkOperationParameter(n edm.OperationParameter, r *checkResult) {
	if r.notNull(n, "Type", n.Type()) {
		r.follow(n.Type())
	}
	if r.notNull(n, "DeclaringOperation", n.DeclaringOperation()) {
		r.reference(n.DeclaringOperation())
	}
}

func checkTerm(n edm.Term, r *checkResult) {
	if r.notNull(n, "Type", n.Type()) {
		r.follow(n.Type())
	}
}

func checkVocabularyAnnotation(n edm.VocabularyAnnotation, r *checkResult) {
	if r.notNull(n, "Term", n.Term()) {
		r.reference(n.Term())
	}
	if r.notNull(n, "Target", n.Target()) {
		r.reference(n.Target())
	}
	if r.notNull(n, "Value", n.Value()) {
		r.follow(n.Value())
	}
}

func checkDirectValueAnnotation(n edm.DirectValueAnnotation, r *checkResult) {
	r.notEmpty(n, "NamespaceURI", n.NamespaceURI())
	if r.notNull(n, "Value", n.Value()) {
		r.follow(n.Value())
	}
}

func checkModel(n edm.Model, r *checkResult) {
	if noNullElements(r, n, "SchemaElements", n.SchemaElements()) {
		followAll(r, n.SchemaElements())
	}
	if noNullElements(r, n, "VocabularyAnnotations", n.VocabularyAnnotations()) {
		followAll(r, n.VocabularyAnnotations())
	}
	if noNullElements(r, n, "ReferencedModels", n.ReferencedModels()) {
		referenceAll(r, n.ReferencedModels())
	}
}

var valueKindCapabilities = map[edm.ValueKind]func(any) bool{
	edm.ValueKindBinary:         is[edm.BinaryValue],
	edm.ValueKindBoolean:        is[edm.BooleanValue],
	edm.ValueKindCollection:     is[edm.CollectionValue],
	edm.ValueKindDateTimeOffset: is[edm.DateTimeOffsetValue],
	edm.ValueKindDecimal:        is[edm.DecimalValue],
	edm.ValueKindEnum:           is[edm.EnumValue],
	edm.ValueKindFloating:       is[edm.FloatingValue],
	edm.ValueKindGuid:           is[edm.GuidValue],
	edm.ValueKindInteger:        is[edm.IntegerValue],
	edm.ValueKindString:         is[edm.StringValue],
	edm.ValueKindStructured:     is[edm.StructuredValue],
	edm.ValueKindDuration:       is[edm.DurationValue],
	edm.ValueKindDate:           is[edm.DateValue],
	edm.ValueKindTimeOfDay:      is[edm.TimeOfDayValue],
}

func checkValue(n edm.Value, r *checkResult) {
	kind := n.ValueKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "ValueKind")
	} else if implements, ok := valueKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
	r.follow(n.Type())
}

func checkCollectionValue(n edm.CollectionValue, r *checkResult) {
	if noNullElements(r, n, "Items", n.Items()) {
		followAll(r, n.Items())
	}
}

func checkStructuredValue(n edm.StructuredValue, r *checkResult) {
	if noNullElements(r, n, "PropertyValues", n.PropertyValues()) {
		followAll(r, n.PropertyValues())
	}
}

func checkPropertyValue(n edm.PropertyValue, r *checkResult) {
	if r.notNull(n, "Value", n.PropertyValue()) {
		r.follow(n.PropertyValue())
	}
}

var expressionKindCapabilities = map[edm.ExpressionKind]func(any) bool{
	edm.ExpressionKindBinaryConstant:         is[edm.BinaryValue],
	edm.ExpressionKindBooleanConstant:        is[edm.BooleanValue],
	edm.ExpressionKindDateTimeOffsetConstant: is[edm.DateTimeOffsetValue],
	edm.ExpressionKindDecimalConstant:        is[edm.DecimalValue],
	edm.ExpressionKindFloatingConstant:       is[edm.FloatingValue],
	edm.ExpressionKindGuidConstant:           is[edm.GuidValue],
	edm.ExpressionKindIntegerConstant:        is[edm.IntegerValue],
	edm.ExpressionKindStringConstant:         is[edm.StringValue],
	edm.ExpressionKindDurationConstant:       is[edm.DurationValue],
	edm.ExpressionKindDateConstant:           is[edm.DateValue],
	edm.ExpressionKindTimeOfDayConstant:      is[edm.TimeOfDayValue],
	edm.ExpressionKindNull:                   is[edm.NullExpression],
	edm.ExpressionKindRecord:                 is[edm.RecordExpression],
	edm.ExpressionKindCollection:             is[edm.CollectionExpression],
	edm.ExpressionKindPath:                   is[edm.PathExpression],
	edm.ExpressionKindPropertyPath:           is[edm.PathExpression],
	edm.ExpressionKindNavigationPropertyPath: is[edm.PathExpression],
	edm.ExpressionKindIf:                     is[edm.IfExpression],
	edm.ExpressionKindCast:                   is[edm.CastExpression],
	edm.ExpressionKindIsType:                 is[edm.IsTypeExpression],
	edm.ExpressionKindFunctionApplication:    is[edm.ApplyExpression],
	edm.ExpressionKindLabeled:                is[edm.LabeledExpression],
	edm.ExpressionKindEnumMember:             is[edm.EnumMemberExpression],
}

func checkExpression(n edm.Expression, r *checkResult) {
	kind := n.ExpressionKind()
	if !kind.IsDefined() {
		r.kindUnexpected(n, kind, "ExpressionKind")
		return
	}
	if implements, ok := expressionKindCapabilities[kind]; ok && !implements(n) {
		r.kindMismatch(n, kind)
	}
}

func checkIfExpression(n edm.IfExpression, r *checkResult) {
	ok := r.notNull(n, "TestExpression", n.TestExpression())
	ok = r.notNull(n, "TrueExpression", n.TrueExpression()) && ok
	ok = r.notNull(n, "FalseExpression", n.FalseExpression()) && ok
	if ok {
		r.follow(n.TestExpression())
		r.follow(n.TrueExpression())
		r.follow(n.FalseExpression())
	}
}

func checkRecordExpression(n edm.RecordExpression, r *checkResult) {
	r.follow(n.DeclaredType())
	if noNullElements(r, n, "Properties", n.Properties()) {
		followAll(r, n.Properties())
	}
}

func checkPropertyConstructor(n edm.PropertyConstructor, r *checkResult) {
	if r.notNull(n, "Value", n.Value()) {
		r.follow(n.Value())
	}
}

func checkCollectionExpression(n edm.CollectionExpression, r *checkResult) {
	r.follow(n.DeclaredType())
	if noNullElements(r, n, "Elements", n.Elements()) {
		followAll(r, n.Elements())
	}
}

func checkEnumMemberExpression(n edm.EnumMemberExpression, r *checkResult) {
	if noNullElements(r, n, "EnumMembers", n.EnumMembers()) {
		referenceAll(r, n.EnumMembers())
	}
}

// checkCastExpression also covers IsType expressions, which share the
// same shape.
func checkCastExpression(n edm.CastExpression, r *checkResult) {
	if r.notNull(n, "Operand", n.Operand()) {
		r.follow(n.Operand())
	}
	if r.notNull(n, "Type", n.Type()) {
		r.follow(n.Type())
	}
}

func checkApplyExpression(n edm.ApplyExpression, r *checkResult) {
	if r.notNull(n, "AppliedFunction", n.AppliedFunction()) {
		r.reference(n.AppliedFunction())
	}
	if noNullElements(r, n, "Arguments", n.Arguments()) {
		followAll(r, n.Arguments())
	}
}

func checkLabeledExpression(n edm.LabeledExpression, r *checkResult) {
	if r.notNull(n, "Expression", n.Inner()) {
		r.follow(n.Inner())
	}
}
