package memory

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
)

// EntityContainer is an entity container.
type EntityContainer struct {
	schemaNamed
	elements []edm.EntityContainerElement
}

// NewEntityContainer creates an empty container.
func NewEntityContainer(namespace, name string) *EntityContainer {
	c := &EntityContainer{}
	c.name, c.namespace = name, namespace
	return c
}

func (c *EntityContainer) SchemaElementKind() edm.SchemaElementKind {
	return edm.SchemaElementKindEntityContainer
}
func (c *EntityContainer) Elements() []edm.EntityContainerElement { return c.elements }

// AddElement appends a member, which may be nil.
func (c *EntityContainer) AddElement(e edm.EntityContainerElement) {
	c.elements = append(c.elements, e)
}

// AddEntitySet creates and adds an entity set.
func (c *EntityContainer) AddEntitySet(name string, entityType edm.EntityType) *EntitySet {
	s := &EntitySet{includeInServiceDocument: true}
	s.name, s.container, s.entityType = name, c, orNil(entityType)
	c.AddElement(s)
	return s
}

// AddSingleton creates and adds a singleton.
func (c *EntityContainer) AddSingleton(name string, entityType edm.EntityType) *Singleton {
	s := &Singleton{}
	s.name, s.container, s.entityType = name, c, orNil(entityType)
	c.AddElement(s)
	return s
}

// AddActionImport creates and adds an action import.
func (c *EntityContainer) AddActionImport(name string, action edm.Operation) *OperationImport {
	return c.addImport(name, action, edm.ContainerElementKindActionImport)
}

// AddFunctionImport creates and adds a function import.
func (c *EntityContainer) AddFunctionImport(name string, function edm.Operation) *OperationImport {
	return c.addImport(name, function, edm.ContainerElementKindFunctionImport)
}

func (c *EntityContainer) addImport(name string, op edm.Operation, kind edm.ContainerElementKind) *OperationImport {
	i := &OperationImport{operation: orNil(op), kind: kind, container: c}
	i.name = name
	c.AddElement(i)
	return i
}

type navigationSource struct {
	named
	container  edm.EntityContainer
	entityType edm.EntityType
	bindings   []edm.NavigationPropertyBinding
}

func (s *navigationSource) Container() edm.EntityContainer { return s.container }
func (s *navigationSource) EntityType() edm.EntityType     { return s.entityType }

func (s *navigationSource) NavigationPropertyBindings() []edm.NavigationPropertyBinding {
	return s.bindings
}

// AddBinding binds a navigation property reachable through path to target.
func (s *navigationSource) AddBinding(nav edm.NavigationProperty, path string, target edm.NavigationSource) *NavigationPropertyBinding {
	b := &NavigationPropertyBinding{navigationProperty: orNil(nav), path: path, target: orNil(target)}
	s.bindings = append(s.bindings, b)
	return b
}

// EntitySet is an entity set.
type EntitySet struct {
	navigationSource
	includeInServiceDocument bool
}

func (s *EntitySet) ContainerElementKind() edm.ContainerElementKind {
	return edm.ContainerElementKindEntitySet
}
func (s *EntitySet) IncludeInServiceDocument() bool { return s.includeInServiceDocument }

// SetIncludeInServiceDocument toggles service document visibility.
func (s *EntitySet) SetIncludeInServiceDocument(v bool) { s.includeInServiceDocument = v }

// Singleton is a singleton.
type Singleton struct {
	navigationSource
}

func (s *Singleton) ContainerElementKind() edm.ContainerElementKind {
	return edm.ContainerElementKindSingleton
}

// OperationImport is an action or function import.
type OperationImport struct {
	named
	operation edm.Operation
	kind      edm.ContainerElementKind
	container edm.EntityContainer
}

func (i *OperationImport) ContainerElementKind() edm.ContainerElementKind { return i.kind }
func (i *OperationImport) Container() edm.EntityContainer                 { return i.container }
func (i *OperationImport) Operation() edm.Operation                       { return i.operation }

// NavigationPropertyBinding binds a navigation property to a target.
type NavigationPropertyBinding struct {
	element
	navigationProperty edm.NavigationProperty
	path               string
	target             edm.NavigationSource
}

func (b *NavigationPropertyBinding) NavigationProperty() edm.NavigationProperty {
	return b.navigationProperty
}
func (b *NavigationPropertyBinding) Target() edm.NavigationSource { return b.target }

// Path returns the binding path, defaulting to the navigation property name.
func (b *NavigationPropertyBinding) Path() string {
	if b.path == "" && b.navigationProperty != nil {
		return b.navigationProperty.Name()
	}
	return b.path
}
