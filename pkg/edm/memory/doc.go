// Package memory is a mutable in-memory implementation of the edm
// capabilities.
//
// Models are assembled with constructors and adders:
//
//	model := memory.NewModel()
//	customer := memory.NewEntityType("NS", "Customer", nil, false, false)
//	id := customer.AddStructuralProperty("ID", memory.NewPrimitiveReference(edm.PrimitiveInt32, false))
//	customer.AddKeys(id)
//	model.AddElement(customer)
//
// Nothing is checked on construction; validation is the job of the
// validator package. The Unresolved* types are placeholders a loader puts
// in place of names it could not resolve; each carries its own error
// through edm.Checkable.
package memory
