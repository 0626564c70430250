package edm

import (
	"time"

	"github.com/google/uuid"
)

// Value is a typed value. Type may be nil for values whose type is implied
// by the context they are used in.
type Value interface {
	Element
	ValueKind() ValueKind
	Type() TypeReference
}

// IntegerValue is an integral value.
type IntegerValue interface {
	Value
	Int() int64
}

// StringValue is a string value.
type StringValue interface {
	Value
	Text() string
}

// BinaryValue is a binary value.
type BinaryValue interface {
	Value
	Bytes() []byte
}

// BooleanValue is a boolean value.
type BooleanValue interface {
	Value
	Bool() bool
}

// FloatingValue is a Single or Double value.
type FloatingValue interface {
	Value
	Float() float64
}

// DecimalValue is a decimal value.
type DecimalValue interface {
	Value
	Decimal() float64
}

// GuidValue is a Guid value.
type GuidValue interface {
	Value
	GUID() uuid.UUID
}

// DateTimeOffsetValue is a DateTimeOffset value.
type DateTimeOffsetValue interface {
	Value
	DateTimeOffset() time.Time
}

// DurationValue is a Duration value.
type DurationValue interface {
	Value
	Duration() time.Duration
}

// DateValue is a Date value. Only the date part is meaningful.
type DateValue interface {
	Value
	Date() time.Time
}

// TimeOfDayValue is a TimeOfDay value expressed as the offset from midnight.
type TimeOfDayValue interface {
	Value
	TimeOfDay() time.Duration
}

// EnumValue is a value of an enum type.
type EnumValue interface {
	Value
	EnumMemberValue() int64
}

// CollectionValue is a collection of values.
type CollectionValue interface {
	Value
	Items() []Value
}

// PropertyValue is a named member of a structured value.
type PropertyValue interface {
	Element
	Name() string
	PropertyValue() Value
}

// StructuredValue is a value of a structured type.
type StructuredValue interface {
	Value
	PropertyValues() []PropertyValue
}

// Expression is an annotation expression.
type Expression interface {
	Element
	ExpressionKind() ExpressionKind
}

// NullExpression is the null literal. It is also a Value of kind Null.
type NullExpression interface {
	Expression
	Value
}

// PathExpression is a path, property path or navigation property path.
type PathExpression interface {
	Expression
	PathSegments() []string
}

// IfExpression is a conditional.
type IfExpression interface {
	Expression
	TestExpression() Expression
	TrueExpression() Expression
	FalseExpression() Expression
}

// RecordExpression constructs a structured value.
type RecordExpression interface {
	Expression
	DeclaredType() TypeReference
	Properties() []PropertyConstructor
}

// PropertyConstructor is one property of a record expression.
type PropertyConstructor interface {
	Element
	Name() string
	Value() Expression
}

// CollectionExpression constructs a collection.
type CollectionExpression interface {
	Expression
	DeclaredType() TypeReference
	Elements() []Expression
}

// EnumMemberExpression references one or more enum members.
type EnumMemberExpression interface {
	Expression
	EnumMembers() []EnumMember
}

// CastExpression converts its operand to a type.
type CastExpression interface {
	Expression
	Operand() Expression
	Type() TypeReference
}

// IsTypeExpression tests its operand against a type.
type IsTypeExpression interface {
	Expression
	Operand() Expression
	Type() TypeReference
}

// ApplyExpression applies a function to arguments.
type ApplyExpression interface {
	Expression
	AppliedFunction() Function
	Arguments() []Expression
}

// LabeledExpression names a sub-expression.
type LabeledExpression interface {
	Expression
	Name() string
	Inner() Expression
}
