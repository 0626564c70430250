package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

type operation struct {
	schemaNamed
	returnType edm.TypeReference
	bound      bool
	parameters []edm.OperationParameter
	self       edm.Operation
}

func (o *operation) ReturnType() edm.TypeReference        { return o.returnType }
func (o *operation) IsBound() bool                        { return o.bound }
func (o *operation) Parameters() []edm.OperationParameter { return o.parameters }

// AddParameter appends a parameter and returns it.
func (o *operation) AddParameter(name string, typ edm.TypeReference) *OperationParameter {
	p := &OperationParameter{typ: orNil(typ), declaring: o.self}
	p.name = name
	o.parameters = append(o.parameters, p)
	return p
}

// AddRawParameter appends p, which may be nil.
func (o *operation) AddRawParameter(p edm.OperationParameter) {
	o.parameters = append(o.parameters, p)
}

// Action is an operation that may have side effects.
type Action struct {
	operation
}

// NewAction creates an action. returnType may be nil.
func NewAction(namespace, name string, returnType edm.TypeReference, bound bool) *Action {
	a := &Action{}
	a.name, a.namespace = name, namespace
	a.returnType, a.bound = orNil(returnType), bound
	a.self = a
	return a
}

func (a *Action) SchemaElementKind() edm.SchemaElementKind { return edm.SchemaElementKindAction }

// Function is a side-effect free operation.
type Function struct {
	operation
	composable bool
}

// NewFunction creates a function.
func NewFunction(namespace, name string, returnType edm.TypeReference, bound, composable bool) *Function {
	f := &Function{composable: composable}
	f.name, f.namespace = name, namespace
	f.returnType, f.bound = orNil(returnType), bound
	f.self = f
	return f
}

func (f *Function) SchemaElementKind() edm.SchemaElementKind { return edm.SchemaElementKindFunction }
func (f *Function) IsComposable() bool                       { return f.composable }

// OperationParameter is a parameter of an action or function.
type OperationParameter struct {
	named
	typ       edm.TypeReference
	declaring edm.Operation
}

func (p *OperationParameter) Type() edm.TypeReference           { return p.typ }
func (p *OperationParameter) DeclaringOperation() edm.Operation { return p.declaring }
