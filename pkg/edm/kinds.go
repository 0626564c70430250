package edm

import "fmt"

// Version identifies the EDM/CSDL version a model targets.
type Version string

const (
	Version4_0  Version = "4.0"
	Version4_01 Version = "4.01"
)

// ParseVersion resolves a version string ("4.0", "4", "4.01").
func ParseVersion(s string) (Version, error) {
	switch s {
	case "4.0", "4", "":
		return Version4_0, nil
	case "4.01":
		return Version4_01, nil
	default:
		return "", fmt.Errorf("unsupported EDM version %q", s)
	}
}

// SchemaElementKind discriminates the role of a schema element.
type SchemaElementKind int

const (
	SchemaElementKindNone SchemaElementKind = iota
	SchemaElementKindTypeDefinition
	SchemaElementKindTerm
	SchemaElementKindAction
	SchemaElementKindEntityContainer
	SchemaElementKindFunction
	schemaElementKindEnd
)

var schemaElementKindNames = [...]string{"None", "TypeDefinition", "Term", "Action", "EntityContainer", "Function"}

func (k SchemaElementKind) String() string { return kindName(int(k), schemaElementKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k SchemaElementKind) IsDefined() bool { return k >= 0 && k < schemaElementKindEnd }

// TypeKind discriminates the shape of a type.
type TypeKind int

const (
	TypeKindNone TypeKind = iota
	TypeKindPrimitive
	TypeKindEntity
	TypeKindComplex
	TypeKindCollection
	TypeKindEntityReference
	TypeKindEnum
	TypeKindTypeDefinition
	TypeKindUntyped
	typeKindEnd
)

var typeKindNames = [...]string{"None", "Primitive", "Entity", "Complex", "Collection", "EntityReference", "Enum", "TypeDefinition", "Untyped"}

func (k TypeKind) String() string { return kindName(int(k), typeKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k TypeKind) IsDefined() bool { return k >= 0 && k < typeKindEnd }

// PrimitiveTypeKind identifies a built-in primitive type.
type PrimitiveTypeKind int

const (
	PrimitiveNone PrimitiveTypeKind = iota
	PrimitiveBinary
	PrimitiveBoolean
	PrimitiveByte
	PrimitiveDateTimeOffset
	PrimitiveDecimal
	PrimitiveDouble
	PrimitiveGuid
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveSByte
	PrimitiveSingle
	PrimitiveString
	PrimitiveStream
	PrimitiveDuration
	PrimitiveDate
	PrimitiveTimeOfDay
	PrimitiveGeography
	PrimitiveGeographyPoint
	PrimitiveGeographyLineString
	PrimitiveGeographyPolygon
	PrimitiveGeographyCollection
	PrimitiveGeographyMultiPolygon
	PrimitiveGeographyMultiLineString
	PrimitiveGeographyMultiPoint
	PrimitiveGeometry
	PrimitiveGeometryPoint
	PrimitiveGeometryLineString
	PrimitiveGeometryPolygon
	PrimitiveGeometryCollection
	PrimitiveGeometryMultiPolygon
	PrimitiveGeometryMultiLineString
	PrimitiveGeometryMultiPoint
	primitiveKindEnd
)

var primitiveKindNames = [...]string{
	"None", "Binary", "Boolean", "Byte", "DateTimeOffset", "Decimal", "Double", "Guid",
	"Int16", "Int32", "Int64", "SByte", "Single", "String", "Stream", "Duration", "Date", "TimeOfDay",
	"Geography", "GeographyPoint", "GeographyLineString", "GeographyPolygon", "GeographyCollection",
	"GeographyMultiPolygon", "GeographyMultiLineString", "GeographyMultiPoint",
	"Geometry", "GeometryPoint", "GeometryLineString", "GeometryPolygon", "GeometryCollection",
	"GeometryMultiPolygon", "GeometryMultiLineString", "GeometryMultiPoint",
}

func (k PrimitiveTypeKind) String() string { return kindName(int(k), primitiveKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k PrimitiveTypeKind) IsDefined() bool { return k >= 0 && k < primitiveKindEnd }

// IsIntegral reports whether k is one of the integer kinds.
func (k PrimitiveTypeKind) IsIntegral() bool {
	switch k {
	case PrimitiveByte, PrimitiveSByte, PrimitiveInt16, PrimitiveInt32, PrimitiveInt64:
		return true
	}
	return false
}

// IsFloating reports whether k is Single or Double.
func (k PrimitiveTypeKind) IsFloating() bool {
	return k == PrimitiveSingle || k == PrimitiveDouble
}

// IsTemporal reports whether k carries a precision facet for fractional seconds.
func (k PrimitiveTypeKind) IsTemporal() bool {
	return k == PrimitiveDateTimeOffset || k == PrimitiveDuration || k == PrimitiveTimeOfDay
}

// IsGeography reports whether k is Geography or one of its subtypes.
func (k PrimitiveTypeKind) IsGeography() bool {
	return k >= PrimitiveGeography && k <= PrimitiveGeographyMultiPoint
}

// IsGeometry reports whether k is Geometry or one of its subtypes.
func (k PrimitiveTypeKind) IsGeometry() bool {
	return k >= PrimitiveGeometry && k <= PrimitiveGeometryMultiPoint
}

// PropertyKind discriminates structural and navigation properties.
type PropertyKind int

const (
	PropertyKindNone PropertyKind = iota
	PropertyKindStructural
	PropertyKindNavigation
	propertyKindEnd
)

var propertyKindNames = [...]string{"None", "Structural", "Navigation"}

func (k PropertyKind) String() string { return kindName(int(k), propertyKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k PropertyKind) IsDefined() bool { return k >= 0 && k < propertyKindEnd }

// ContainerElementKind discriminates entity container members.
type ContainerElementKind int

const (
	ContainerElementKindNone ContainerElementKind = iota
	ContainerElementKindEntitySet
	ContainerElementKindActionImport
	ContainerElementKindFunctionImport
	ContainerElementKindSingleton
	containerElementKindEnd
)

var containerElementKindNames = [...]string{"None", "EntitySet", "ActionImport", "FunctionImport", "Singleton"}

func (k ContainerElementKind) String() string { return kindName(int(k), containerElementKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k ContainerElementKind) IsDefined() bool { return k >= 0 && k < containerElementKindEnd }

// OnDeleteAction is the delete behavior of a navigation property.
type OnDeleteAction int

const (
	OnDeleteNone OnDeleteAction = iota
	OnDeleteCascade
	OnDeleteSetNull
	OnDeleteSetDefault
	onDeleteEnd
)

var onDeleteNames = [...]string{"None", "Cascade", "SetNull", "SetDefault"}

func (a OnDeleteAction) String() string { return kindName(int(a), onDeleteNames[:]) }

// IsDefined reports whether a is a recognized value.
func (a OnDeleteAction) IsDefined() bool { return a >= 0 && a < onDeleteEnd }

// ExpressionKind discriminates annotation expressions.
type ExpressionKind int

const (
	ExpressionKindNone ExpressionKind = iota
	ExpressionKindBinaryConstant
	ExpressionKindBooleanConstant
	ExpressionKindDateTimeOffsetConstant
	ExpressionKindDecimalConstant
	ExpressionKindFloatingConstant
	ExpressionKindGuidConstant
	ExpressionKindIntegerConstant
	ExpressionKindStringConstant
	ExpressionKindDurationConstant
	ExpressionKindDateConstant
	ExpressionKindTimeOfDayConstant
	ExpressionKindNull
	ExpressionKindRecord
	ExpressionKindCollection
	ExpressionKindPath
	ExpressionKindPropertyPath
	ExpressionKindNavigationPropertyPath
	ExpressionKindIf
	ExpressionKindCast
	ExpressionKindIsType
	ExpressionKindFunctionApplication
	ExpressionKindLabeled
	ExpressionKindEnumMember
	expressionKindEnd
)

var expressionKindNames = [...]string{
	"None", "BinaryConstant", "BooleanConstant", "DateTimeOffsetConstant", "DecimalConstant",
	"FloatingConstant", "GuidConstant", "IntegerConstant", "StringConstant", "DurationConstant",
	"DateConstant", "TimeOfDayConstant", "Null", "Record", "Collection", "Path", "PropertyPath",
	"NavigationPropertyPath", "If", "Cast", "IsType", "FunctionApplication", "Labeled", "EnumMember",
}

func (k ExpressionKind) String() string { return kindName(int(k), expressionKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k ExpressionKind) IsDefined() bool { return k >= 0 && k < expressionKindEnd }

// ValueKind discriminates values.
type ValueKind int

const (
	ValueKindNone ValueKind = iota
	ValueKindBinary
	ValueKindBoolean
	ValueKindCollection
	ValueKindDateTimeOffset
	ValueKindDecimal
	ValueKindEnum
	ValueKindFloating
	ValueKindGuid
	ValueKindInteger
	ValueKindNull
	ValueKindString
	ValueKindStructured
	ValueKindDuration
	ValueKindDate
	ValueKindTimeOfDay
	valueKindEnd
)

var valueKindNames = [...]string{
	"None", "Binary", "Boolean", "Collection", "DateTimeOffset", "Decimal", "Enum", "Floating",
	"Guid", "Integer", "Null", "String", "Structured", "Duration", "Date", "TimeOfDay",
}

func (k ValueKind) String() string { return kindName(int(k), valueKindNames[:]) }

// IsDefined reports whether k is a recognized value.
func (k ValueKind) IsDefined() bool { return k >= 0 && k < valueKindEnd }

func kindName(v int, names []string) string {
	if v >= 0 && v < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}
