package memory

import (
	"strings"

	"github.com/OData/odata.net-sub135/pkg/edm"
)

// Model is a mutable in-memory model. It is not safe for concurrent
// mutation; validation only reads it.
type Model struct {
	element
	elements    []edm.SchemaElement
	annotations []edm.VocabularyAnnotation
	references  []edm.Model
	direct      map[edm.Element][]edm.DirectValueAnnotation
}

// NewModel creates an empty model referencing refs.
func NewModel(refs ...edm.Model) *Model {
	return &Model{
		references: refs,
		direct:     make(map[edm.Element][]edm.DirectValueAnnotation),
	}
}

func (m *Model) SchemaElements() []edm.SchemaElement               { return m.elements }
func (m *Model) VocabularyAnnotations() []edm.VocabularyAnnotation { return m.annotations }
func (m *Model) ReferencedModels() []edm.Model                     { return m.references }

// DirectValueAnnotations returns the annotations attached to element.
func (m *Model) DirectValueAnnotations(element edm.Element) []edm.DirectValueAnnotation {
	if edm.IsNil(element) {
		return nil
	}
	return m.direct[element]
}

// AddElement adds schema elements. Nil elements are kept.
func (m *Model) AddElement(elements ...edm.SchemaElement) {
	m.elements = append(m.elements, elements...)
}

// AddVocabularyAnnotation adds annotations.
func (m *Model) AddVocabularyAnnotation(annotations ...edm.VocabularyAnnotation) {
	m.annotations = append(m.annotations, annotations...)
}

// AddReferencedModel adds a referenced model.
func (m *Model) AddReferencedModel(ref edm.Model) {
	m.references = append(m.references, ref)
}

// SetDirectValueAnnotation attaches a direct value annotation to element.
// element must be a comparable value.
func (m *Model) SetDirectValueAnnotation(element edm.Element, annotation edm.DirectValueAnnotation) {
	m.direct[element] = append(m.direct[element], annotation)
}

// FindType resolves a qualified type name, including built-in primitives
// and types of referenced models.
func (m *Model) FindType(qualifiedName string) edm.SchemaType {
	if strings.HasPrefix(qualifiedName, edm.CoreNamespace+".") {
		if p, ok := edm.LookupPrimitiveType(qualifiedName); ok {
			return p
		}
	}
	var found edm.SchemaType
	m.search(func(e edm.SchemaElement) bool {
		if t, ok := e.(edm.SchemaType); ok && edm.FullName(e) == qualifiedName {
			found = t
			return true
		}
		return false
	})
	return found
}

// FindTerm resolves a qualified term name.
func (m *Model) FindTerm(qualifiedName string) edm.Term {
	var found edm.Term
	m.search(func(e edm.SchemaElement) bool {
		if t, ok := e.(edm.Term); ok && edm.FullName(e) == qualifiedName {
			found = t
			return true
		}
		return false
	})
	return found
}

// FindOperations returns every overload with the qualified name.
func (m *Model) FindOperations(qualifiedName string) []edm.Operation {
	var found []edm.Operation
	m.search(func(e edm.SchemaElement) bool {
		if op, ok := e.(edm.Operation); ok && edm.FullName(e) == qualifiedName {
			found = append(found, op)
		}
		return false
	})
	return found
}

// FindEntityContainer resolves a qualified container name.
func (m *Model) FindEntityContainer(qualifiedName string) edm.EntityContainer {
	var found edm.EntityContainer
	m.search(func(e edm.SchemaElement) bool {
		if c, ok := e.(edm.EntityContainer); ok && edm.FullName(e) == qualifiedName {
			found = c
			return true
		}
		return false
	})
	return found
}

// search visits the schema elements of m and its referenced models until
// visit returns true.
func (m *Model) search(visit func(edm.SchemaElement) bool) {
	seen := make(map[edm.Model]bool)
	stack := []edm.Model{m}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if edm.IsNil(cur) || seen[cur] {
			continue
		}
		seen[cur] = true
		for _, e := range cur.SchemaElements() {
			if !edm.IsNil(e) && visit(e) {
				return
			}
		}
		refs := cur.ReferencedModels()
		for i := len(refs) - 1; i >= 0; i-- {
			stack = append(stack, refs[i])
		}
	}
}
