package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// Term is a vocabulary term.
type Term struct {
	schemaNamed
	typ          edm.TypeReference
	appliesTo    []string
	defaultValue string
}

// NewTerm creates a term. appliesTo lists the element kinds the term may
// annotate ("EntityType", "Property", ...); empty means any.
func NewTerm(namespace, name string, typ edm.TypeReference, appliesTo ...string) *Term {
	t := &Term{typ: orNil(typ), appliesTo: appliesTo}
	t.name, t.namespace = name, namespace
	return t
}

func (t *Term) SchemaElementKind() edm.SchemaElementKind { return edm.SchemaElementKindTerm }
func (t *Term) Type() edm.TypeReference                  { return t.typ }
func (t *Term) AppliesTo() []string                      { return t.appliesTo }
func (t *Term) DefaultValue() string                     { return t.defaultValue }

// SetDefaultValue sets the default value literal.
func (t *Term) SetDefaultValue(v string) { t.defaultValue = v }

// VocabularyAnnotation applies a term to a target.
type VocabularyAnnotation struct {
	element
	term      edm.Term
	target    edm.Element
	qualifier string
	value     edm.Expression
}

// NewVocabularyAnnotation creates an annotation. It is not attached to a
// model until passed to Model.AddVocabularyAnnotation.
func NewVocabularyAnnotation(target edm.Element, term edm.Term, qualifier string, value edm.Expression) *VocabularyAnnotation {
	return &VocabularyAnnotation{target: orNil(target), term: orNil(term), qualifier: qualifier, value: orNil(value)}
}

func (a *VocabularyAnnotation) Term() edm.Term        { return a.term }
func (a *VocabularyAnnotation) Target() edm.Element   { return a.target }
func (a *VocabularyAnnotation) Qualifier() string     { return a.qualifier }
func (a *VocabularyAnnotation) Value() edm.Expression { return a.value }

// DirectValueAnnotation is a raw namespaced value attached to an element.
type DirectValueAnnotation struct {
	named
	namespaceURI string
	value        any
}

// NewDirectValueAnnotation creates a direct value annotation.
func NewDirectValueAnnotation(namespaceURI, name string, value any) *DirectValueAnnotation {
	a := &DirectValueAnnotation{namespaceURI: namespaceURI, value: value}
	a.name = name
	return a
}

func (a *DirectValueAnnotation) NamespaceURI() string { return a.namespaceURI }
func (a *DirectValueAnnotation) Value() any           { return a.value }
