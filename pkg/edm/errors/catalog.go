package errors

import "fmt"

// Catalog produces human-readable messages for error codes.
type Catalog interface {
	Message(code ErrorCode, args ...any) string
}

// TemplateCatalog maps codes to fmt templates.
type TemplateCatalog map[ErrorCode]string

// Message formats the template registered for code. Codes without a
// template render as their symbolic name followed by the arguments.
func (c TemplateCatalog) Message(code ErrorCode, args ...any) string {
	tmpl, ok := c[code]
	if !ok {
		if len(args) == 0 {
			return code.String()
		}
		return fmt.Sprint(append([]any{code.String() + ": "}, args...)...)
	}
	return fmt.Sprintf(tmpl, args...)
}

// Merge returns a copy of c with the entries of overrides applied.
func (c TemplateCatalog) Merge(overrides map[ErrorCode]string) TemplateCatalog {
	merged := make(TemplateCatalog, len(c)+len(overrides))
	for code, tmpl := range c {
		merged[code] = tmpl
	}
	for code, tmpl := range overrides {
		merged[code] = tmpl
	}
	return merged
}

// DefaultCatalog holds the built-in English messages.
var DefaultCatalog = TemplateCatalog{
	NameTooLong:                               "The name '%s' is too long. Names must not exceed %d characters.",
	InvalidName:                               "The name '%s' is not a valid simple identifier.",
	InvalidNamespaceName:                      "The namespace '%s' is invalid. Namespaces are dotted simple identifiers of at most %d characters.",
	SystemNamespaceEncountered:                "The namespace '%s' is reserved for system use.",
	AlreadyDefined:                            "An element with the name '%s' is already defined.",
	DuplicateEntityContainerMemberName:        "The entity container '%s' already contains a member named '%s'.",
	DuplicatePropertyNameSpecifiedInEntityKey: "The key of entity type '%s' lists the property '%s' more than once.",
	KeyMissingOnEntityType:                    "The entity type '%s' has no key defined. Define a key or make the type abstract.",
	InvalidKey:                                "The key property '%s' does not belong to the entity type '%s'.",
	InvalidKeyNullablePart:                    "The key property '%s' of entity type '%s' must not be nullable.",
	EntityKeyMustBeScalar:                     "The key property '%s' of entity type '%s' must be of a primitive, enum or type definition type.",
	BaseTypeKeyRedefined:                      "The entity type '%s' cannot define a key because its base type '%s' already defines one.",
	PropertyNameAlreadyDefined:                "Each property name in a type must be unique. Property name '%s' is already defined.",
	PropertyNameMatchesDeclaringType:          "The property '%s' cannot have the same name as its declaring type.",
	CaseInsensitivePropertyNameConflict:       "The property names '%s' and '%s' differ only in case.",
	BaseTypeKindMismatch:                      "The type '%s' must derive from a type of the same kind; '%s' is a %s type.",
	EnumMemberNameAlreadyDefined:              "The enum type '%s' already has a member named '%s'.",
	EnumMustHaveIntegerUnderlyingType:         "The underlying type of enum type '%s' must be an integral type, found '%s'.",
	EnumMemberValueOutOfRange:                 "The value %d of enum member '%s' does not fit the underlying type '%s'.",
	InvalidPropertyType:                       "The property '%s' has an invalid type; structural properties must be primitive, complex, enum, type definition or collections of those.",
	InvalidNavigationPropertyType:             "The navigation property '%s' must target an entity type or a collection of an entity type.",
	InvalidAction:                             "The navigation property '%s' and its partner cannot both specify an OnDelete action.",
	NavigationPropertyWithRecursiveContainmentTargetMustBeOptional: "The navigation property '%s' is a recursive containment and its target must be optional.",
	NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne: "The partner of recursive containment navigation property '%s' must be a nullable single-valued navigation property.",
	NavigationPartnerTypeMismatch:                                       "The partner '%s' of navigation property '%s' must target the declaring type '%s'.",
	ContainmentOnBothEnds:                                               "The navigation property '%s' and its partner '%s' cannot both contain their targets.",
	DependentPropertiesMustBelongToDependentEntity:                      "The dependent property '%s' of navigation property '%s' must belong to the dependent entity type '%s'.",
	PrincipalPropertiesMustBelongToPrincipalEntity:                      "The principal property '%s' of navigation property '%s' must belong to the principal entity type '%s'.",
	TypeMismatchRelationshipConstraint:                                  "The types of dependent property '%s' and principal property '%s' of navigation property '%s' do not match.",
	DuplicateParameterName:                                              "The operation '%s' already has a parameter named '%s'.",
	BoundOperationMustHaveParameters:                                    "The bound operation '%s' must have at least one parameter.",
	FunctionMustHaveReturnType:                                          "The function '%s' must specify a return type.",
	OperationImportCannotImportBoundOperation:                           "The operation import '%s' cannot import the bound operation '%s'.",
	BadUnresolvedType:                                                   "The type '%s' could not be found.",
	MaxLengthOutOfRange:                                                 "The max length facet %d is out of range; it must be non-negative.",
	PrecisionOutOfRange:                                                 "The precision facet %d is out of range [%d, %d].",
	ScaleOutOfRange:                                                     "The scale facet %d is out of range; it must be between 0 and the precision %d.",
	BadUnresolvedTerm:                                                   "The term '%s' could not be found.",
	AnnotationNotApplicableToTarget:                                     "The term '%s' cannot be applied to a target of kind '%s'.",
	DuplicateAnnotation:                                                 "The annotated element already has an annotation with term '%s' and qualifier '%s'.",
	ExpressionNotValidForTheAssertedType:                                "The type of the expression is incompatible with the asserted type '%s'.",
	ExpressionPrimitiveKindNotValidForAssertedType:                      "The primitive kind '%s' of the expression is not valid for the asserted type '%s'.",
	CannotAssertNullableTypeAsNonNullableType:                           "A nullable type '%s' cannot be asserted as the non-nullable type '%s'.",
	NullCannotBeAssertedToBeANonNullableType:                            "Null value cannot have the non-nullable type '%s'.",
	IntegerConstantValueOutOfRange:                                      "The integer value %d is out of range for type '%s'.",
	StringConstantLengthOutOfRange:                                      "The string length %d exceeds the max length %d.",
	BinaryConstantLengthOutOfRange:                                      "The binary length %d exceeds the max length %d.",
	PrimitiveConstantExpressionNotValidForNonPrimitiveType:              "A primitive expression cannot be asserted as the non-primitive type '%s'.",
	CollectionExpressionNotValidForNonCollectionType:                    "A collection expression cannot be asserted as the non-collection type '%s'.",
	RecordExpressionNotValidForNonStructuredType:                        "A record expression cannot be asserted as the non-structured type '%s'.",
	RecordExpressionMissingRequiredProperty:                             "The record expression does not provide the required property '%s'.",
	RecordExpressionHasExtraProperties:                                  "The record expression has the property '%s' which is not declared by the closed type '%s'.",
	ExpressionEnumKindNotValidForAssertedType:                           "The enum member expression is not valid for the asserted type '%s'.",
	PathIsNotValidForTheGivenContext:                                    "The path segment '%s' cannot be resolved in the context of type '%s'.",
	IncorrectNumberOfArguments:                                          "The function '%s' expects %d argument(s) but %d were supplied.",
	InvalidNavigationPropertyBindingTarget:                              "The binding target '%s' of navigation property '%s' is not of type '%s' or a type derived from it.",
	UnresolvedNavigationPropertyBindingPath:                             "The binding path '%s' does not resolve to a navigation property of '%s'.",
	BoundFunctionOverloadsMustHaveSameReturnType:                        "The overloads of bound function '%s' must have the same return type.",
	BadUnresolvedProperty:                                               "The property '%s' could not be found.",
	BadUnresolvedEnumMember:                                             "The enum member '%s' could not be found.",
	BadUnresolvedOperation:                                              "The operation '%s' could not be found.",
	BadUnresolvedEntitySet:                                              "The entity set '%s' could not be found.",

	InterfaceCriticalPropertyValueMustNotBeNull:        "The value of the property '%s' of %s must not be null.",
	InterfaceCriticalKindValueMismatch:                 "The kind value '%s' of %s is inconsistent with the interfaces it implements.",
	InterfaceCriticalKindValueUnexpected:               "The kind value '%s' of property '%s' is not a recognized value.",
	InterfaceCriticalEnumerableMustNotHaveNullElements: "The collection '%s' of %s must not contain null elements.",
	InterfaceCriticalEnumPropertyValueOutOfRange:       "The value '%s' of property '%s' is out of range.",
	InterfaceCriticalNavigationPartnerInvalid:          "The partner of navigation property '%s' does not point back to it.",
	InterfaceCriticalCycleInTypeHierarchy:              "The type '%s' has a cycle in its type hierarchy.",
}
