package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/OData/odata.net-sub135/pkg/edm"
)

// constant is the shared part of constant expressions. A constant is both
// an expression and a value.
type constant struct {
	element
	typ edm.TypeReference
}

func (c *constant) Type() edm.TypeReference { return c.typ }

// SetType attaches a declared type to the constant.
func (c *constant) SetType(typ edm.TypeReference) { c.typ = orNil(typ) }

// IntegerConstant is an integer literal.
type IntegerConstant struct {
	constant
	value int64
}

// NewIntegerConstant creates an integer literal without a declared type.
func NewIntegerConstant(v int64) *IntegerConstant { return &IntegerConstant{value: v} }

func (c *IntegerConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindIntegerConstant
}
func (c *IntegerConstant) ValueKind() edm.ValueKind { return edm.ValueKindInteger }
func (c *IntegerConstant) Int() int64               { return c.value }

// StringConstant is a string literal.
type StringConstant struct {
	constant
	value string
}

// NewStringConstant creates a string literal.
func NewStringConstant(v string) *StringConstant { return &StringConstant{value: v} }

func (c *StringConstant) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindStringConstant }
func (c *StringConstant) ValueKind() edm.ValueKind           { return edm.ValueKindString }
func (c *StringConstant) Text() string                       { return c.value }

// BinaryConstant is a binary literal.
type BinaryConstant struct {
	constant
	value []byte
}

// NewBinaryConstant creates a binary literal.
func NewBinaryConstant(v []byte) *BinaryConstant { return &BinaryConstant{value: v} }

func (c *BinaryConstant) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindBinaryConstant }
func (c *BinaryConstant) ValueKind() edm.ValueKind           { return edm.ValueKindBinary }
func (c *BinaryConstant) Bytes() []byte                      { return c.value }

// BooleanConstant is a boolean literal.
type BooleanConstant struct {
	constant
	value bool
}

// NewBooleanConstant creates a boolean literal.
func NewBooleanConstant(v bool) *BooleanConstant { return &BooleanConstant{value: v} }

func (c *BooleanConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindBooleanConstant
}
func (c *BooleanConstant) ValueKind() edm.ValueKind { return edm.ValueKindBoolean }
func (c *BooleanConstant) Bool() bool               { return c.value }

// FloatingConstant is a floating point literal.
type FloatingConstant struct {
	constant
	value float64
}

// NewFloatingConstant creates a floating point literal.
func NewFloatingConstant(v float64) *FloatingConstant { return &FloatingConstant{value: v} }

func (c *FloatingConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindFloatingConstant
}
func (c *FloatingConstant) ValueKind() edm.ValueKind { return edm.ValueKindFloating }
func (c *FloatingConstant) Float() float64           { return c.value }

// DecimalConstant is a decimal literal.
type DecimalConstant struct {
	constant
	value float64
}

// NewDecimalConstant creates a decimal literal.
func NewDecimalConstant(v float64) *DecimalConstant { return &DecimalConstant{value: v} }

func (c *DecimalConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindDecimalConstant
}
func (c *DecimalConstant) ValueKind() edm.ValueKind { return edm.ValueKindDecimal }
func (c *DecimalConstant) Decimal() float64         { return c.value }

// GuidConstant is a Guid literal.
type GuidConstant struct {
	constant
	value uuid.UUID
}

// NewGuidConstant creates a Guid literal.
func NewGuidConstant(v uuid.UUID) *GuidConstant { return &GuidConstant{value: v} }

func (c *GuidConstant) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindGuidConstant }
func (c *GuidConstant) ValueKind() edm.ValueKind           { return edm.ValueKindGuid }
func (c *GuidConstant) GUID() uuid.UUID                    { return c.value }

// DateTimeOffsetConstant is a DateTimeOffset literal.
type DateTimeOffsetConstant struct {
	constant
	value time.Time
}

// NewDateTimeOffsetConstant creates a DateTimeOffset literal.
func NewDateTimeOffsetConstant(v time.Time) *DateTimeOffsetConstant {
	return &DateTimeOffsetConstant{value: v}
}

func (c *DateTimeOffsetConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindDateTimeOffsetConstant
}
func (c *DateTimeOffsetConstant) ValueKind() edm.ValueKind  { return edm.ValueKindDateTimeOffset }
func (c *DateTimeOffsetConstant) DateTimeOffset() time.Time { return c.value }

// DurationConstant is a Duration literal.
type DurationConstant struct {
	constant
	value time.Duration
}

// NewDurationConstant creates a Duration literal.
func NewDurationConstant(v time.Duration) *DurationConstant { return &DurationConstant{value: v} }

func (c *DurationConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindDurationConstant
}
func (c *DurationConstant) ValueKind() edm.ValueKind { return edm.ValueKindDuration }
func (c *DurationConstant) Duration() time.Duration  { return c.value }

// DateConstant is a Date literal.
type DateConstant struct {
	constant
	value time.Time
}

// NewDateConstant creates a Date literal.
func NewDateConstant(v time.Time) *DateConstant { return &DateConstant{value: v} }

func (c *DateConstant) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindDateConstant }
func (c *DateConstant) ValueKind() edm.ValueKind           { return edm.ValueKindDate }
func (c *DateConstant) Date() time.Time                    { return c.value }

// TimeOfDayConstant is a TimeOfDay literal.
type TimeOfDayConstant struct {
	constant
	value time.Duration
}

// NewTimeOfDayConstant creates a TimeOfDay literal.
func NewTimeOfDayConstant(v time.Duration) *TimeOfDayConstant { return &TimeOfDayConstant{value: v} }

func (c *TimeOfDayConstant) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindTimeOfDayConstant
}
func (c *TimeOfDayConstant) ValueKind() edm.ValueKind { return edm.ValueKindTimeOfDay }
func (c *TimeOfDayConstant) TimeOfDay() time.Duration { return c.value }

// NullExpression is the null literal.
type NullExpression struct {
	element
}

// NewNullExpression creates a null literal.
func NewNullExpression() *NullExpression { return &NullExpression{} }

func (n *NullExpression) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindNull }
func (n *NullExpression) ValueKind() edm.ValueKind           { return edm.ValueKindNull }
func (n *NullExpression) Type() edm.TypeReference            { return nil }

// PathExpression is a path, property path or navigation property path.
type PathExpression struct {
	element
	kind     edm.ExpressionKind
	segments []string
}

// NewPathExpression creates a value path.
func NewPathExpression(segments ...string) *PathExpression {
	return &PathExpression{kind: edm.ExpressionKindPath, segments: segments}
}

// NewPropertyPathExpression creates a property path.
func NewPropertyPathExpression(segments ...string) *PathExpression {
	return &PathExpression{kind: edm.ExpressionKindPropertyPath, segments: segments}
}

// NewNavigationPropertyPathExpression creates a navigation property path.
func NewNavigationPropertyPathExpression(segments ...string) *PathExpression {
	return &PathExpression{kind: edm.ExpressionKindNavigationPropertyPath, segments: segments}
}

func (p *PathExpression) ExpressionKind() edm.ExpressionKind { return p.kind }
func (p *PathExpression) PathSegments() []string             { return p.segments }

// IfExpression is a conditional expression.
type IfExpression struct {
	element
	test, ifTrue, ifFalse edm.Expression
}

// NewIfExpression creates a conditional.
func NewIfExpression(test, ifTrue, ifFalse edm.Expression) *IfExpression {
	return &IfExpression{test: orNil(test), ifTrue: orNil(ifTrue), ifFalse: orNil(ifFalse)}
}

func (e *IfExpression) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindIf }
func (e *IfExpression) TestExpression() edm.Expression     { return e.test }
func (e *IfExpression) TrueExpression() edm.Expression     { return e.ifTrue }
func (e *IfExpression) FalseExpression() edm.Expression    { return e.ifFalse }

// RecordExpression constructs a structured value.
type RecordExpression struct {
	element
	declaredType edm.TypeReference
	properties   []edm.PropertyConstructor
}

// NewRecordExpression creates a record. declaredType may be nil.
func NewRecordExpression(declaredType edm.TypeReference, properties ...edm.PropertyConstructor) *RecordExpression {
	return &RecordExpression{declaredType: orNil(declaredType), properties: properties}
}

func (e *RecordExpression) ExpressionKind() edm.ExpressionKind    { return edm.ExpressionKindRecord }
func (e *RecordExpression) DeclaredType() edm.TypeReference       { return e.declaredType }
func (e *RecordExpression) Properties() []edm.PropertyConstructor { return e.properties }

// PropertyConstructor is a named member of a record expression.
type PropertyConstructor struct {
	named
	value edm.Expression
}

// NewPropertyConstructor creates a record member.
func NewPropertyConstructor(name string, value edm.Expression) *PropertyConstructor {
	p := &PropertyConstructor{value: orNil(value)}
	p.name = name
	return p
}

func (p *PropertyConstructor) Value() edm.Expression { return p.value }

// CollectionExpression constructs a collection.
type CollectionExpression struct {
	element
	declaredType edm.TypeReference
	elements     []edm.Expression
}

// NewCollectionExpression creates a collection. declaredType may be nil.
func NewCollectionExpression(declaredType edm.TypeReference, elements ...edm.Expression) *CollectionExpression {
	return &CollectionExpression{declaredType: orNil(declaredType), elements: elements}
}

func (e *CollectionExpression) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindCollection
}
func (e *CollectionExpression) DeclaredType() edm.TypeReference { return e.declaredType }
func (e *CollectionExpression) Elements() []edm.Expression      { return e.elements }

// EnumMemberExpression references enum members.
type EnumMemberExpression struct {
	element
	members []edm.EnumMember
}

// NewEnumMemberExpression creates an enum member reference.
func NewEnumMemberExpression(members ...edm.EnumMember) *EnumMemberExpression {
	return &EnumMemberExpression{members: members}
}

func (e *EnumMemberExpression) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindEnumMember
}
func (e *EnumMemberExpression) EnumMembers() []edm.EnumMember { return e.members }

// CastExpression casts an operand to a type.
type CastExpression struct {
	element
	operand edm.Expression
	typ     edm.TypeReference
}

// NewCastExpression creates a cast.
func NewCastExpression(operand edm.Expression, typ edm.TypeReference) *CastExpression {
	return &CastExpression{operand: orNil(operand), typ: orNil(typ)}
}

func (e *CastExpression) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindCast }
func (e *CastExpression) Operand() edm.Expression            { return e.operand }
func (e *CastExpression) Type() edm.TypeReference            { return e.typ }

// IsTypeExpression tests an operand against a type.
type IsTypeExpression struct {
	element
	operand edm.Expression
	typ     edm.TypeReference
}

// NewIsTypeExpression creates a type test.
func NewIsTypeExpression(operand edm.Expression, typ edm.TypeReference) *IsTypeExpression {
	return &IsTypeExpression{operand: orNil(operand), typ: orNil(typ)}
}

func (e *IsTypeExpression) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindIsType }
func (e *IsTypeExpression) Operand() edm.Expression            { return e.operand }
func (e *IsTypeExpression) Type() edm.TypeReference            { return e.typ }

// ApplyExpression applies a function.
type ApplyExpression struct {
	element
	function  edm.Function
	arguments []edm.Expression
}

// NewApplyExpression creates a function application.
func NewApplyExpression(function edm.Function, arguments ...edm.Expression) *ApplyExpression {
	return &ApplyExpression{function: orNil(function), arguments: arguments}
}

func (e *ApplyExpression) ExpressionKind() edm.ExpressionKind {
	return edm.ExpressionKindFunctionApplication
}
func (e *ApplyExpression) AppliedFunction() edm.Function { return e.function }
func (e *ApplyExpression) Arguments() []edm.Expression   { return e.arguments }

// LabeledExpression names an expression.
type LabeledExpression struct {
	named
	inner edm.Expression
}

// NewLabeledExpression creates a labeled expression.
func NewLabeledExpression(name string, inner edm.Expression) *LabeledExpression {
	l := &LabeledExpression{inner: orNil(inner)}
	l.name = name
	return l
}

func (e *LabeledExpression) ExpressionKind() edm.ExpressionKind { return edm.ExpressionKindLabeled }
func (e *LabeledExpression) Inner() edm.Expression              { return e.inner }
