package yamlmodel

import (
	"errors"
	"fmt"
	"strings"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

// structuredBuilder is what entity and complex types of the memory model
// share for construction.
type structuredBuilder interface {
	edm.StructuredType
	AddStructuralProperty(name string, typ edm.TypeReference) *memory.StructuralProperty
	AddNavigationProperty(info memory.NavigationPropertyInfo) *memory.NavigationProperty
	SetBaseType(base edm.StructuredType)
	SetLocation(loc edmErrors.Location)
}

type declaredType struct {
	doc *yamlDocument
	src *yamlType
	typ edm.SchemaType
}

type pendingNavigation struct {
	doc *yamlDocument
	src *yamlNavigation
	nav *memory.NavigationProperty
}

type pendingSource struct {
	doc    *yamlDocument
	src    *yamlNavigationSource
	source interface {
		edm.NavigationSource
		AddBinding(nav edm.NavigationProperty, path string, target edm.NavigationSource) *memory.NavigationPropertyBinding
	}
	container *memory.EntityContainer
}

// builder turns parsed documents into a memory model. Declarations are
// indexed first so that references resolve regardless of order or file.
type builder struct {
	model      *memory.Model
	types      map[string]edm.SchemaType
	terms      map[string]edm.Term
	operations map[string][]edm.Operation
	containers map[string]*memory.EntityContainer
	errs       []error
}

func newBuilder() *builder {
	return &builder{
		model:      memory.NewModel(),
		types:      make(map[string]edm.SchemaType),
		terms:      make(map[string]edm.Term),
		operations: make(map[string][]edm.Operation),
		containers: make(map[string]*memory.EntityContainer),
	}
}

func (b *builder) fail(doc *yamlDocument, pos position, format string, args ...any) {
	b.errs = append(b.errs, &Error{
		Type:     ErrorTypeStructure,
		Message:  fmt.Sprintf(format, args...),
		Location: pos.at(doc.path),
	})
}

// build creates the model described by docs.
func (b *builder) build(docs []*yamlDocument) (*memory.Model, error) {
	var declared []declaredType
	for _, doc := range docs {
		if doc.Namespace == "" && (len(doc.Types) > 0 || len(doc.Operations) > 0 || len(doc.Terms) > 0 || doc.Container != nil) {
			b.fail(doc, doc.pos, "namespace is required")
			continue
		}
		for i := range doc.Types {
			if d, ok := b.declareType(doc, &doc.Types[i]); ok {
				declared = append(declared, d)
			}
		}
	}

	var navigations []pendingNavigation
	for _, d := range declared {
		navigations = append(navigations, b.defineType(d)...)
	}
	for _, n := range navigations {
		b.linkNavigation(n)
	}

	for _, doc := range docs {
		for i := range doc.Operations {
			b.buildOperation(doc, &doc.Operations[i])
		}
		for i := range doc.Terms {
			b.buildTerm(doc, &doc.Terms[i])
		}
	}

	var sources []pendingSource
	for _, doc := range docs {
		if doc.Container != nil {
			sources = append(sources, b.buildContainer(doc, doc.Container)...)
		}
	}
	for _, s := range sources {
		b.bindSource(s)
	}

	for _, doc := range docs {
		for i := range doc.Annotations {
			b.buildAnnotation(doc, &doc.Annotations[i])
		}
	}

	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.model, nil
}

// qualify resolves an unqualified name in the namespace of doc.
func qualify(doc *yamlDocument, name string) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	return doc.Namespace + "." + name
}

// collectionElement returns the element type name of "Collection(T)".
func collectionElement(name string) (string, bool) {
	if inner, ok := strings.CutPrefix(name, "Collection("); ok && strings.HasSuffix(inner, ")") {
		return strings.TrimSpace(strings.TrimSuffix(inner, ")")), true
	}
	return "", false
}

func (b *builder) declareType(doc *yamlDocument, yt *yamlType) (declaredType, bool) {
	loc := yt.pos.at(doc.path)
	var typ edm.SchemaType
	switch yt.Kind {
	case "entity", "":
		t := memory.NewEntityType(doc.Namespace, yt.Name, nil, yt.Abstract, yt.Open)
		t.SetHasStream(yt.HasStream)
		t.SetLocation(loc)
		typ = t
	case "complex":
		t := memory.NewComplexType(doc.Namespace, yt.Name, nil, yt.Abstract, yt.Open)
		t.SetLocation(loc)
		typ = t
	case "enum":
		underlying, ok := b.primitive(doc, yt.pos, yt.Underlying)
		if !ok {
			return declaredType{}, false
		}
		if underlying == nil {
			underlying = edm.PrimitiveTypeOf(edm.PrimitiveInt32)
		}
		t := memory.NewEnumType(doc.Namespace, yt.Name, underlying, yt.Flags)
		t.SetLocation(loc)
		typ = t
	case "typedef":
		underlying, ok := b.primitive(doc, yt.pos, yt.Underlying)
		if !ok {
			return declaredType{}, false
		}
		if underlying == nil {
			b.fail(doc, yt.pos, "type definition %s needs an underlying type", yt.Name)
			return declaredType{}, false
		}
		t := memory.NewTypeDefinition(doc.Namespace, yt.Name, underlying)
		t.SetLocation(loc)
		typ = t
	default:
		b.fail(doc, yt.pos, "unknown type kind %q (want entity, complex, enum or typedef)", yt.Kind)
		return declaredType{}, false
	}

	full := qualify(doc, yt.Name)
	if _, exists := b.types[full]; !exists {
		b.types[full] = typ
	}
	b.model.AddElement(typ)
	b.direct(doc, typ, yt.Direct)
	return declaredType{doc: doc, src: yt, typ: typ}, true
}

// primitive resolves the underlying type of an enum or type definition. An
// empty name yields nil.
func (b *builder) primitive(doc *yamlDocument, pos position, name string) (edm.PrimitiveType, bool) {
	if name == "" {
		return nil, true
	}
	if strings.HasPrefix(name, edm.CoreNamespace+".") {
		if p, ok := edm.LookupPrimitiveType(name); ok {
			return p, true
		}
	}
	b.fail(doc, pos, "underlying type %q is not a primitive type", name)
	return nil, false
}

func (b *builder) direct(doc *yamlDocument, el edm.Element, entries []yamlDirect) {
	for _, d := range entries {
		a := memory.NewDirectValueAnnotation(d.Namespace, d.Name, d.Value)
		a.SetLocation(d.pos.at(doc.path))
		b.model.SetDirectValueAnnotation(el, a)
	}
}

// defineType fills in members, base types and keys. Navigation partners and
// constraints are returned for linking once every type is defined.
func (b *builder) defineType(d declaredType) []pendingNavigation {
	doc, yt := d.doc, d.src
	switch t := d.typ.(type) {
	case *memory.EnumType:
		for i, ym := range yt.Members {
			value := int64(i)
			if ym.Value != nil {
				value = *ym.Value
			}
			m := t.AddMember(ym.Name, value)
			m.SetLocation(ym.pos.at(doc.path))
		}
		return nil
	case structuredBuilder:
		if yt.Base != "" {
			t.SetBaseType(b.structuredType(doc, yt.pos, yt.Base, t.TypeKind()))
		}
		for _, yp := range yt.Properties {
			p := t.AddStructuralProperty(yp.Name, b.typeReference(doc, yp.pos, yp.yamlTypeRef))
			p.SetLocation(yp.pos.at(doc.path))
			p.SetDefaultValue(yp.Default)
			b.direct(doc, p, yp.Direct)
		}
		var pending []pendingNavigation
		for i := range yt.Navigation {
			yn := &yt.Navigation[i]
			nav := t.AddNavigationProperty(memory.NavigationPropertyInfo{
				Name:           yn.Name,
				ContainsTarget: yn.ContainsTarget,
				OnDelete:       b.onDelete(doc, yn),
			})
			nav.SetType(b.navigationType(doc, yn))
			nav.SetLocation(yn.pos.at(doc.path))
			pending = append(pending, pendingNavigation{doc: doc, src: yn, nav: nav})
		}
		b.defineKey(doc, yt, t)
		return pending
	}
	return nil
}

func (b *builder) defineKey(doc *yamlDocument, yt *yamlType, t structuredBuilder) {
	if len(yt.Key) == 0 {
		return
	}
	entity, ok := t.(*memory.EntityType)
	if !ok {
		b.fail(doc, yt.pos, "only entity types declare a key, %s is %s", yt.Name, yt.Kind)
		return
	}
	for _, name := range yt.Key {
		entity.AddKeys(b.structuralProperty(doc, yt.pos, entity, name))
	}
}

func (b *builder) structuralProperty(doc *yamlDocument, pos position, t edm.StructuredType, name string) edm.StructuralProperty {
	if !edm.IsNil(t) {
		if p, ok := edm.FindProperty(t, name).(edm.StructuralProperty); ok && !edm.IsNil(p) && p.PropertyKind() == edm.PropertyKindStructural {
			return p
		}
	}
	return memory.NewUnresolvedProperty(t, name, pos.at(doc.path))
}

func (b *builder) onDelete(doc *yamlDocument, yn *yamlNavigation) edm.OnDeleteAction {
	switch yn.OnDelete {
	case "", "None":
		return edm.OnDeleteNone
	case "Cascade":
		return edm.OnDeleteCascade
	case "SetNull":
		return edm.OnDeleteSetNull
	case "SetDefault":
		return edm.OnDeleteSetDefault
	}
	b.fail(doc, yn.pos, "unknown on_delete action %q", yn.OnDelete)
	return edm.OnDeleteNone
}

func (b *builder) navigationType(doc *yamlDocument, yn *yamlNavigation) edm.TypeReference {
	if inner, ok := collectionElement(yn.Type); ok {
		return memory.NewCollectionReference(memory.NewTypeReference(b.namedType(doc, yn.pos, inner), false))
	}
	nullable := yn.Nullable == nil || *yn.Nullable
	return memory.NewTypeReference(b.namedType(doc, yn.pos, yn.Type), nullable)
}

func (b *builder) linkNavigation(n pendingNavigation) {
	doc, yn, nav := n.doc, n.src, n.nav
	loc := yn.pos.at(doc.path)
	target := structuredTarget(nav.Type())

	if yn.Partner != "" {
		var partner edm.NavigationProperty
		if !edm.IsNil(target) {
			partner, _ = edm.FindProperty(target, yn.Partner).(edm.NavigationProperty)
		}
		if edm.IsNil(partner) {
			partner = memory.NewUnresolvedNavigationProperty(target, yn.Partner, loc)
		}
		nav.SetPartner(partner)
	}

	for _, c := range yn.Constraints {
		nav.AddConstraint(
			b.structuralProperty(doc, c.pos, nav.DeclaringType(), c.Property),
			b.structuralProperty(doc, c.pos, target, c.ReferencedProperty),
		)
	}
}

// structuredTarget is the structured type of tr or of its elements.
func structuredTarget(tr edm.TypeReference) edm.StructuredType {
	if edm.IsNil(tr) {
		return nil
	}
	if coll, ok := tr.Definition().(edm.CollectionType); ok {
		return edm.StructuredTypeOf(coll.ElementType())
	}
	return edm.StructuredTypeOf(tr)
}

// namedType resolves a type name. Unknown names resolve to placeholders
// that validation reports at this location.
func (b *builder) namedType(doc *yamlDocument, pos position, name string) edm.Type {
	if name == "" {
		return nil
	}
	if inner, ok := collectionElement(name); ok {
		return memory.NewCollectionType(memory.NewTypeReference(b.namedType(doc, pos, inner), true))
	}
	if strings.HasPrefix(name, edm.CoreNamespace+".") {
		if p, ok := edm.LookupPrimitiveType(name); ok {
			return p
		}
		return memory.NewUnresolvedType(name, pos.at(doc.path))
	}
	full := qualify(doc, name)
	if t, ok := b.types[full]; ok {
		return t
	}
	return memory.NewUnresolvedType(full, pos.at(doc.path))
}

// structuredType resolves the base type of a structured type. kind picks
// the placeholder shape when the name is unknown.
func (b *builder) structuredType(doc *yamlDocument, pos position, name string, kind edm.TypeKind) edm.StructuredType {
	full := qualify(doc, name)
	if t, ok := b.types[full].(edm.StructuredType); ok {
		return t
	}
	if kind == edm.TypeKindComplex {
		return memory.NewUnresolvedComplexType(full, pos.at(doc.path))
	}
	return memory.NewUnresolvedEntityType(full, pos.at(doc.path))
}

func (b *builder) entityType(doc *yamlDocument, pos position, name string) edm.EntityType {
	full := qualify(doc, name)
	if t, ok := b.types[full].(*memory.EntityType); ok {
		return t
	}
	return memory.NewUnresolvedEntityType(full, pos.at(doc.path))
}

// typeReference builds a reference with facets. For collections the facets
// and nullability apply to the element type.
func (b *builder) typeReference(doc *yamlDocument, pos position, ref yamlTypeRef) edm.TypeReference {
	nullable := ref.Nullable == nil || *ref.Nullable
	name := ref.Type
	inner, collection := collectionElement(name)
	if collection {
		name = inner
	}

	tr := memory.NewTypeReference(b.namedType(doc, pos, name), nullable)
	tr.SetLocation(pos.at(doc.path))
	switch v := ref.MaxLength.(type) {
	case nil:
	case int:
		tr.WithMaxLength(v)
	case string:
		if v == "max" {
			tr.WithUnboundedLength()
		} else {
			b.fail(doc, pos, "max_length must be an integer or \"max\", got %q", v)
		}
	default:
		b.fail(doc, pos, "max_length must be an integer or \"max\", got %v", v)
	}
	if ref.Precision != nil {
		tr.WithPrecision(*ref.Precision)
	}
	if ref.Scale != nil {
		tr.WithScale(*ref.Scale)
	}

	if collection {
		coll := memory.NewCollectionReference(tr)
		coll.SetLocation(pos.at(doc.path))
		return coll
	}
	return tr
}

func (b *builder) buildOperation(doc *yamlDocument, yo *yamlOperation) {
	var returns edm.TypeReference
	if yo.Returns != nil {
		returns = b.typeReference(doc, yo.pos, *yo.Returns)
	}

	var op interface {
		edm.Operation
		AddParameter(name string, typ edm.TypeReference) *memory.OperationParameter
		SetLocation(loc edmErrors.Location)
	}
	switch yo.Kind {
	case "action", "":
		op = memory.NewAction(doc.Namespace, yo.Name, returns, yo.Bound)
	case "function":
		op = memory.NewFunction(doc.Namespace, yo.Name, returns, yo.Bound, yo.Composable)
	default:
		b.fail(doc, yo.pos, "unknown operation kind %q (want action or function)", yo.Kind)
		return
	}
	op.SetLocation(yo.pos.at(doc.path))
	for _, yp := range yo.Parameters {
		p := op.AddParameter(yp.Name, b.typeReference(doc, yp.pos, yp.yamlTypeRef))
		p.SetLocation(yp.pos.at(doc.path))
	}

	full := qualify(doc, yo.Name)
	b.operations[full] = append(b.operations[full], op)
	b.model.AddElement(op)
}

func (b *builder) buildTerm(doc *yamlDocument, yt *yamlTerm) {
	term := memory.NewTerm(doc.Namespace, yt.Name, b.typeReference(doc, yt.pos, yt.yamlTypeRef), yt.AppliesTo...)
	term.SetLocation(yt.pos.at(doc.path))
	term.SetDefaultValue(yt.Default)

	full := qualify(doc, yt.Name)
	if _, exists := b.terms[full]; !exists {
		b.terms[full] = term
	}
	b.model.AddElement(term)
}

func (b *builder) buildContainer(doc *yamlDocument, yc *yamlContainer) []pendingSource {
	container := memory.NewEntityContainer(doc.Namespace, yc.Name)
	container.SetLocation(yc.pos.at(doc.path))
	b.containers[qualify(doc, yc.Name)] = container
	b.model.AddElement(container)

	var pending []pendingSource
	for i := range yc.EntitySets {
		ys := &yc.EntitySets[i]
		set := container.AddEntitySet(ys.Name, b.entityType(doc, ys.pos, ys.Type))
		set.SetLocation(ys.pos.at(doc.path))
		if ys.IncludeInServiceDocument != nil {
			set.SetIncludeInServiceDocument(*ys.IncludeInServiceDocument)
		}
		pending = append(pending, pendingSource{doc: doc, src: ys, source: set, container: container})
	}
	for i := range yc.Singletons {
		ys := &yc.Singletons[i]
		s := container.AddSingleton(ys.Name, b.entityType(doc, ys.pos, ys.Type))
		s.SetLocation(ys.pos.at(doc.path))
		pending = append(pending, pendingSource{doc: doc, src: ys, source: s, container: container})
	}
	for _, yi := range yc.ActionImports {
		imp := container.AddActionImport(yi.Name, b.operation(doc, yi.pos, yi.Operation, false))
		imp.SetLocation(yi.pos.at(doc.path))
	}
	for _, yi := range yc.FunctionImports {
		imp := container.AddFunctionImport(yi.Name, b.operation(doc, yi.pos, yi.Operation, true))
		imp.SetLocation(yi.pos.at(doc.path))
	}
	return pending
}

// operation resolves an imported operation, preferring an unbound overload
// of the wanted kind.
func (b *builder) operation(doc *yamlDocument, pos position, name string, function bool) edm.Operation {
	full := qualify(doc, name)
	candidates := b.operations[full]
	for _, op := range candidates {
		_, isFunction := op.(edm.Function)
		if isFunction == function && !op.IsBound() {
			return op
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return memory.NewUnresolvedOperation(full, pos.at(doc.path))
}

func (b *builder) bindSource(s pendingSource) {
	doc := s.doc
	for _, yb := range s.src.Bindings {
		loc := yb.pos.at(doc.path)
		nav := b.bindingNavigation(doc, yb, s.source.EntityType())
		target := b.navigationSource(s.container, yb.Target)
		if edm.IsNil(target) {
			target = memory.NewUnresolvedEntitySet(yb.Target, loc)
		}
		binding := s.source.AddBinding(nav, yb.Path, target)
		binding.SetLocation(loc)
	}
}

// bindingNavigation follows a binding path to its navigation property.
// Segments containing a dot are type casts.
func (b *builder) bindingNavigation(doc *yamlDocument, yb yamlBinding, start edm.StructuredType) edm.NavigationProperty {
	current := start
	segments := strings.Split(yb.Path, "/")
	for i, seg := range segments {
		if edm.IsNil(current) {
			break
		}
		if strings.Contains(seg, ".") {
			cast, ok := b.types[seg].(edm.StructuredType)
			if !ok {
				break
			}
			current = cast
			continue
		}
		prop := edm.FindProperty(current, seg)
		if edm.IsNil(prop) {
			break
		}
		if i == len(segments)-1 {
			if nav, ok := prop.(edm.NavigationProperty); ok {
				return nav
			}
			break
		}
		current = structuredTarget(prop.Type())
	}
	return memory.NewUnresolvedNavigationProperty(start, yb.Path, yb.pos.at(doc.path))
}

// navigationSource resolves "Name" in container or "Namespace.Container/Name"
// in any container.
func (b *builder) navigationSource(container *memory.EntityContainer, name string) edm.NavigationSource {
	if qualified, member, ok := strings.Cut(name, "/"); ok {
		c, found := b.containers[qualified]
		if !found {
			return nil
		}
		container, name = c, member
	}
	for _, el := range container.Elements() {
		if s, ok := el.(edm.NavigationSource); ok && s.Name() == name {
			return s
		}
	}
	return nil
}

func (b *builder) buildAnnotation(doc *yamlDocument, ya *yamlAnnotation) {
	loc := ya.pos.at(doc.path)

	full := qualify(doc, ya.Term)
	term, ok := b.terms[full]
	if !ok {
		term = memory.NewUnresolvedTerm(full, loc)
	}

	var value edm.Expression
	if ya.Value.Kind != 0 {
		value = b.expression(doc, &ya.Value)
	}

	a := memory.NewVocabularyAnnotation(b.target(doc, ya.pos, ya.Target), term, ya.Qualifier, value)
	a.SetLocation(loc)
	b.model.AddVocabularyAnnotation(a)
}

// target resolves an annotation target: a schema element name, optionally
// followed by "/member" naming a property, enum member, container member or
// parameter.
func (b *builder) target(doc *yamlDocument, pos position, path string) edm.Element {
	loc := pos.at(doc.path)
	head, member, hasMember := strings.Cut(path, "/")
	head = qualify(doc, head)

	var el edm.Element
	if t, ok := b.types[head]; ok {
		el = t
	} else if t, ok := b.terms[head]; ok {
		el = t
	} else if ops := b.operations[head]; len(ops) > 0 {
		el = ops[0]
	} else if c, ok := b.containers[head]; ok {
		el = c
	} else {
		return memory.NewUnresolvedType(head, loc)
	}
	if !hasMember {
		return el
	}

	switch e := el.(type) {
	case edm.StructuredType:
		if p := edm.FindProperty(e, member); !edm.IsNil(p) {
			return p
		}
		return memory.NewUnresolvedProperty(e, member, loc)
	case edm.EnumType:
		for _, m := range e.Members() {
			if m.Name() == member {
				return m
			}
		}
		return memory.NewUnresolvedEnumMember(member, loc)
	case edm.EntityContainer:
		for _, m := range e.Elements() {
			if m.Name() == member {
				return m
			}
		}
		return memory.NewUnresolvedEntitySet(member, loc)
	case edm.Operation:
		for _, p := range e.Parameters() {
			if p.Name() == member {
				return p
			}
		}
	}
	return memory.NewUnresolvedProperty(nil, member, loc)
}
