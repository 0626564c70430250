package validator

import (
	"fmt"
	"sync"

	"github.com/OData/odata.net-sub135/pkg/edm"
)

// baseRules are the rules every version checks, in registration order.
func baseRules() []*Rule {
	return []*Rule{
		ElementDirectValueAnnotationFullNameMustBeUnique,

		NamedElementNameIsTooLong,
		NamedElementNameIsNotAllowed,
		SchemaElementNamespaceIsNotAllowed,
		SchemaElementNamespaceIsTooLong,
		SchemaElementSystemNamespaceEncountered,

		ModelDuplicateSchemaElementName,
		ModelBoundFunctionOverloadsMustHaveSameReturnType,
		ModelDuplicateVocabularyAnnotation,

		EntityContainerDuplicateEntityContainerMemberName,
		NavigationPropertyBindingTargetTypeMismatch,
		NavigationPropertyBindingPathMustResolve,
		OperationImportCannotImportBoundOperation,

		StructuredTypePropertyNameAlreadyDefined,
		StructuredTypeInvalidMemberNameMatchesTypeName,
		StructuredTypeBaseTypeMustBeSameKindAsDerivedKind,

		EntityTypeKeyMissingOnEntityType,
		EntityTypeDuplicatePropertyNameSpecifiedInEntityKey,
		EntityTypeInvalidKeyNullablePart,
		EntityTypeEntityKeyMustBeScalar,
		EntityTypeKeyPropertyMustBelongToEntity,
		EntityTypeKeyRedefinedInDerivedType,

		EnumTypeEnumMemberNameAlreadyDefined,
		EnumMustHaveIntegerUnderlyingType,
		EnumMemberValueMustFitUnderlyingType,

		StructuralPropertyInvalidPropertyType,

		NavigationPropertyTypeMustBeEntity,
		NavigationPropertyInvalidOperationMultipleEndsInAssociation,
		NavigationPropertyWithRecursiveContainmentTargetMustBeOptional,
		NavigationPropertyWithRecursiveContainmentSourceMustBeFromZeroOrOne,
		NavigationPropertyPartnerTypeMismatch,
		NavigationPropertyContainmentOnBothEnds,
		NavigationPropertyDependentPropertiesMustBelongToDependentEntity,
		NavigationPropertyPrincipalPropertiesMustBelongToPrincipalEntity,
		NavigationPropertyTypeMismatchRelationshipConstraint,

		OperationParameterNameAlreadyDefinedDuplicate,
		BoundOperationMustHaveParameters,
		FunctionMustHaveReturnType,

		TypeReferenceInaccessibleSchemaType,
		StringTypeReferenceMaxLengthNegative,
		BinaryTypeReferenceMaxLengthNegative,
		DecimalTypeReferencePrecisionOutOfRange,
		DecimalTypeReferenceScaleOutOfRange,
		TemporalTypeReferencePrecisionOutOfRange,

		VocabularyAnnotationInaccessibleTerm,
		VocabularyAnnotationAssertCorrectExpressionType,
		VocabularyAnnotationTermAppliesToTarget,

		IfExpressionAssertCorrectTestType,
		CollectionExpressionAllElementsCorrectType,
		RecordExpressionPropertiesMatchType,
		ApplyExpressionArgumentsMatchParameters,
	}
}

var (
	defaultsOnce sync.Once
	ruleSetV4    *RuleSet
	ruleSetV401  *RuleSet
)

func initDefaults() {
	ruleSetV4 = MustRuleSet(nil, baseRules()...)
	ruleSetV401 = MustRuleSet(ruleSetV4, StructuredTypePropertyNameCaseInsensitiveConflict)
}

// RuleSetForVersion returns the default rule set for version. The returned
// sets are shared and must not be modified.
func RuleSetForVersion(version edm.Version) (*RuleSet, error) {
	defaultsOnce.Do(initDefaults)
	switch version {
	case edm.Version4_0:
		return ruleSetV4, nil
	case edm.Version4_01:
		return ruleSetV401, nil
	default:
		return nil, fmt.Errorf("no rule set for EDM version %q", version)
	}
}

// DefaultRuleSet returns the rule set for EDM 4.0.
func DefaultRuleSet() *RuleSet {
	defaultsOnce.Do(initDefaults)
	return ruleSetV4
}
