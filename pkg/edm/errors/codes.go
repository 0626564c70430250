package errors

import (
	"fmt"
	"sort"
)

// ErrorCode identifies a class of validation error. Codes are stable: the
// numeric value is part of the rendered output contract.
type ErrorCode int

// Semantic error codes.
const (
	InvalidErrorCodeValue ErrorCode = 0

	NameTooLong                ErrorCode = 1
	InvalidName                ErrorCode = 2
	InvalidNamespaceName       ErrorCode = 3
	SystemNamespaceEncountered ErrorCode = 4
	AlreadyDefined             ErrorCode = 5

	DuplicateEntityContainerMemberName                                  ErrorCode = 6
	DuplicatePropertyNameSpecifiedInEntityKey                           ErrorCode = 7
	KeyMissingOnEntityType                                              ErrorCode = 8
	InvalidKey                                                          ErrorCode = 9
	InvalidKeyNullablePart                                              ErrorCode = 10
	EntityKeyMustBeScalar                                               ErrorCode = 11
	BaseTypeKeyRedefined                                                ErrorCode = 12
	PropertyNameAlreadyDefined                                          ErrorCode = 13
	PropertyNameMatchesDeclaringType                                    ErrorCode = 14
	CaseInsensitivePropertyNameConflict                                 ErrorCode = 15
	BaseTypeKindMismatch                                                ErrorCode = 16
	EnumMemberNameAlreadyDefined                                        ErrorCode = 17
	EnumMustHaveIntegerUnderlyingType                                   ErrorCode = 18
	EnumMemberValueOutOfRange                                           ErrorCode = 19
	InvalidPropertyType                                                 ErrorCode = 20
	InvalidNavigationPropertyType                                       ErrorCode = 21
	InvalidAction                                                       ErrorCode = 22
	NavigationPropertyWithRecursiveContainmentTargetMustBeOptional      ErrorCode = 23
	NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne ErrorCode = 24
	NavigationPartnerTypeMismatch                                       ErrorCode = 25
	ContainmentOnBothEnds                                               ErrorCode = 26
	DependentPropertiesMustBelongToDependentEntity                      ErrorCode = 27
	PrincipalPropertiesMustBelongToPrincipalEntity                      ErrorCode = 28
	TypeMismatchRelationshipConstraint                                  ErrorCode = 29
	DuplicateParameterName                                              ErrorCode = 30
	BoundOperationMustHaveParameters                                    ErrorCode = 31
	FunctionMustHaveReturnType                                          ErrorCode = 32
	OperationImportCannotImportBoundOperation                           ErrorCode = 33
	BadUnresolvedType                                                   ErrorCode = 34
	MaxLengthOutOfRange                                                 ErrorCode = 35
	PrecisionOutOfRange                                                 ErrorCode = 36
	ScaleOutOfRange                                                     ErrorCode = 37
	BadUnresolvedTerm                                                   ErrorCode = 38
	AnnotationNotApplicableToTarget                                     ErrorCode = 39
	DuplicateAnnotation                                                 ErrorCode = 40
	ExpressionNotValidForTheAssertedType                                ErrorCode = 41
	ExpressionPrimitiveKindNotValidForAssertedType                      ErrorCode = 42
	CannotAssertNullableTypeAsNonNullableType                           ErrorCode = 43
	NullCannotBeAssertedToBeANonNullableType                            ErrorCode = 44
	IntegerConstantValueOutOfRange                                      ErrorCode = 45
	StringConstantLengthOutOfRange                                      ErrorCode = 46
	BinaryConstantLengthOutOfRange                                      ErrorCode = 47
	PrimitiveConstantExpressionNotValidForNonPrimitiveType              ErrorCode = 48
	CollectionExpressionNotValidForNonCollectionType                    ErrorCode = 49
	RecordExpressionNotValidForNonStructuredType                        ErrorCode = 50
	RecordExpressionMissingRequiredProperty                             ErrorCode = 51
	RecordExpressionHasExtraProperties                                  ErrorCode = 52
	ExpressionEnumKindNotValidForAssertedType                           ErrorCode = 53
	PathIsNotValidForTheGivenContext                                    ErrorCode = 54
	IncorrectNumberOfArguments                                          ErrorCode = 55
	InvalidNavigationPropertyBindingTarget                              ErrorCode = 56
	UnresolvedNavigationPropertyBindingPath                             ErrorCode = 57
	BoundFunctionOverloadsMustHaveSameReturnType                        ErrorCode = 58
	BadUnresolvedProperty                                               ErrorCode = 59
	BadUnresolvedEnumMember                                             ErrorCode = 60
	BadUnresolvedOperation                                              ErrorCode = 61
	BadUnresolvedEntitySet                                              ErrorCode = 62
)

// Interface-critical error codes. They form one contiguous range; any error
// in it means the object graph itself is malformed.
const (
	InterfaceCriticalPropertyValueMustNotBeNull        ErrorCode = 242
	InterfaceCriticalKindValueMismatch                 ErrorCode = 243
	InterfaceCriticalKindValueUnexpected               ErrorCode = 244
	InterfaceCriticalEnumerableMustNotHaveNullElements ErrorCode = 245
	InterfaceCriticalEnumPropertyValueOutOfRange       ErrorCode = 246
	InterfaceCriticalNavigationPartnerInvalid          ErrorCode = 247
	InterfaceCriticalCycleInTypeHierarchy              ErrorCode = 248
)

// IsCritical reports whether code lies in the interface-critical range.
func IsCritical(code ErrorCode) bool {
	return code >= InterfaceCriticalPropertyValueMustNotBeNull &&
		code <= InterfaceCriticalCycleInTypeHierarchy
}

var codeNames = map[ErrorCode]string{
	InvalidErrorCodeValue:                     "InvalidErrorCodeValue",
	NameTooLong:                               "NameTooLong",
	InvalidName:                               "InvalidName",
	InvalidNamespaceName:                      "InvalidNamespaceName",
	SystemNamespaceEncountered:                "SystemNamespaceEncountered",
	AlreadyDefined:                            "AlreadyDefined",
	DuplicateEntityContainerMemberName:        "DuplicateEntityContainerMemberName",
	DuplicatePropertyNameSpecifiedInEntityKey: "DuplicatePropertyNameSpecifiedInEntityKey",
	KeyMissingOnEntityType:                    "KeyMissingOnEntityType",
	InvalidKey:                                "InvalidKey",
	InvalidKeyNullablePart:                    "InvalidKeyNullablePart",
	EntityKeyMustBeScalar:                     "EntityKeyMustBeScalar",
	BaseTypeKeyRedefined:                      "BaseTypeKeyRedefined",
	PropertyNameAlreadyDefined:                "PropertyNameAlreadyDefined",
	PropertyNameMatchesDeclaringType:          "PropertyNameMatchesDeclaringType",
	CaseInsensitivePropertyNameConflict:       "CaseInsensitivePropertyNameConflict",
	BaseTypeKindMismatch:                      "BaseTypeKindMismatch",
	EnumMemberNameAlreadyDefined:              "EnumMemberNameAlreadyDefined",
	EnumMustHaveIntegerUnderlyingType:         "EnumMustHaveIntegerUnderlyingType",
	EnumMemberValueOutOfRange:                 "EnumMemberValueOutOfRange",
	InvalidPropertyType:                       "InvalidPropertyType",
	InvalidNavigationPropertyType:             "InvalidNavigationPropertyType",
	InvalidAction:                             "InvalidAction",
	NavigationPropertyWithRecursiveContainmentTargetMustBeOptional: "NavigationPropertyWithRecursiveContainmentTargetMustBeOptional",
	NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne: "NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne",
	NavigationPartnerTypeMismatch:                                       "NavigationPartnerTypeMismatch",
	ContainmentOnBothEnds:                                               "ContainmentOnBothEnds",
	DependentPropertiesMustBelongToDependentEntity:                      "DependentPropertiesMustBelongToDependentEntity",
	PrincipalPropertiesMustBelongToPrincipalEntity:                      "PrincipalPropertiesMustBelongToPrincipalEntity",
	TypeMismatchRelationshipConstraint:                                  "TypeMismatchRelationshipConstraint",
	DuplicateParameterName:                                              "DuplicateParameterName",
	BoundOperationMustHaveParameters:                                    "BoundOperationMustHaveParameters",
	FunctionMustHaveReturnType:                                          "FunctionMustHaveReturnType",
	OperationImportCannotImportBoundOperation:                           "OperationImportCannotImportBoundOperation",
	BadUnresolvedType:                                                   "BadUnresolvedType",
	MaxLengthOutOfRange:                                                 "MaxLengthOutOfRange",
	PrecisionOutOfRange:                                                 "PrecisionOutOfRange",
	ScaleOutOfRange:                                                     "ScaleOutOfRange",
	BadUnresolvedTerm:                                                   "BadUnresolvedTerm",
	AnnotationNotApplicableToTarget:                                     "AnnotationNotApplicableToTarget",
	DuplicateAnnotation:                                                 "DuplicateAnnotation",
	ExpressionNotValidForTheAssertedType:                                "ExpressionNotValidForTheAssertedType",
	ExpressionPrimitiveKindNotValidForAssertedType:                      "ExpressionPrimitiveKindNotValidForAssertedType",
	CannotAssertNullableTypeAsNonNullableType:                           "CannotAssertNullableTypeAsNonNullableType",
	NullCannotBeAssertedToBeANonNullableType:                            "NullCannotBeAssertedToBeANonNullableType",
	IntegerConstantValueOutOfRange:                                      "IntegerConstantValueOutOfRange",
	StringConstantLengthOutOfRange:                                      "StringConstantLengthOutOfRange",
	BinaryConstantLengthOutOfRange:                                      "BinaryConstantLengthOutOfRange",
	PrimitiveConstantExpressionNotValidForNonPrimitiveType:              "PrimitiveConstantExpressionNotValidForNonPrimitiveType",
	CollectionExpressionNotValidForNonCollectionType:                    "CollectionExpressionNotValidForNonCollectionType",
	RecordExpressionNotValidForNonStructuredType:                        "RecordExpressionNotValidForNonStructuredType",
	RecordExpressionMissingRequiredProperty:                             "RecordExpressionMissingRequiredProperty",
	RecordExpressionHasExtraProperties:                                  "RecordExpressionHasExtraProperties",
	ExpressionEnumKindNotValidForAssertedType:                           "ExpressionEnumKindNotValidForAssertedType",
	PathIsNotValidForTheGivenContext:                                    "PathIsNotValidForTheGivenContext",
	IncorrectNumberOfArguments:                                          "IncorrectNumberOfArguments",
	InvalidNavigationPropertyBindingTarget:                              "InvalidNavigationPropertyBindingTarget",
	UnresolvedNavigationPropertyBindingPath:                             "UnresolvedNavigationPropertyBindingPath",
	BoundFunctionOverloadsMustHaveSameReturnType:                        "BoundFunctionOverloadsMustHaveSameReturnType",
	BadUnresolvedProperty:                                               "BadUnresolvedProperty",
	BadUnresolvedEnumMember:                                             "BadUnresolvedEnumMember",
	BadUnresolvedOperation:                                              "BadUnresolvedOperation",
	BadUnresolvedEntitySet:                                              "BadUnresolvedEntitySet",

	InterfaceCriticalPropertyValueMustNotBeNull:        "InterfaceCriticalPropertyValueMustNotBeNull",
	InterfaceCriticalKindValueMismatch:                 "InterfaceCriticalKindValueMismatch",
	InterfaceCriticalKindValueUnexpected:               "InterfaceCriticalKindValueUnexpected",
	InterfaceCriticalEnumerableMustNotHaveNullElements: "InterfaceCriticalEnumerableMustNotHaveNullElements",
	InterfaceCriticalEnumPropertyValueOutOfRange:       "InterfaceCriticalEnumPropertyValueOutOfRange",
	InterfaceCriticalNavigationPartnerInvalid:          "InterfaceCriticalNavigationPartnerInvalid",
	InterfaceCriticalCycleInTypeHierarchy:              "InterfaceCriticalCycleInTypeHierarchy",
}

var codesByName = func() map[string]ErrorCode {
	m := make(map[string]ErrorCode, len(codeNames))
	for code, name := range codeNames {
		m[name] = code
	}
	return m
}()

// String returns the symbolic name of the code, or its number when unknown.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// ParseErrorCode resolves a symbolic code name.
func ParseErrorCode(name string) (ErrorCode, bool) {
	code, ok := codesByName[name]
	return code, ok
}

// Codes returns every known error code in ascending numeric order.
func Codes() []ErrorCode {
	codes := make([]ErrorCode, 0, len(codeNames))
	for code := range codeNames {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
