package yamlmodel

import (
	"os"

	"gopkg.in/yaml.v3"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// position is the line and column a YAML node started at.
type position struct {
	line, column int
}

func positionOf(node *yaml.Node) position {
	if node == nil {
		return position{}
	}
	return position{line: node.Line, column: node.Column}
}

func (p position) at(file string) edmErrors.Location {
	return edmErrors.Location{File: file, Line: p.line, Column: p.column}
}

// yamlDocument is one model description file before it is turned into
// model elements.
type yamlDocument struct {
	Namespace   string           `yaml:"namespace"`
	Types       []yamlType       `yaml:"types"`
	Operations  []yamlOperation  `yaml:"operations"`
	Terms       []yamlTerm       `yaml:"terms"`
	Container   *yamlContainer   `yaml:"container"`
	Annotations []yamlAnnotation `yaml:"annotations"`

	path string
	pos  position
}

// yamlTypeRef is a type name plus the facets of a reference to it. Type
// names are qualified ("Sales.Customer", "Edm.String"), unqualified names
// resolve in the document namespace, and "Collection(T)" denotes a
// collection.
type yamlTypeRef struct {
	Type      string `yaml:"type"`
	Nullable  *bool  `yaml:"nullable"`
	MaxLength any    `yaml:"max_length"` // integer or "max"
	Precision *int   `yaml:"precision"`
	Scale     *int   `yaml:"scale"`
}

type yamlType struct {
	Name       string           `yaml:"name"`
	Kind       string           `yaml:"kind"` // entity, complex, enum or typedef
	Base       string           `yaml:"base"`
	Abstract   bool             `yaml:"abstract"`
	Open       bool             `yaml:"open"`
	HasStream  bool             `yaml:"has_stream"`
	Key        []string         `yaml:"key"`
	Properties []yamlProperty   `yaml:"properties"`
	Navigation []yamlNavigation `yaml:"navigation"`
	Underlying string           `yaml:"underlying"`
	Flags      bool             `yaml:"flags"`
	Members    []yamlMember     `yaml:"members"`
	Direct     []yamlDirect     `yaml:"direct_annotations"`

	pos position
}

type yamlProperty struct {
	Name        string `yaml:"name"`
	yamlTypeRef `yaml:",inline"`
	Default     string       `yaml:"default"`
	Direct      []yamlDirect `yaml:"direct_annotations"`

	pos position
}

type yamlNavigation struct {
	Name           string           `yaml:"name"`
	Type           string           `yaml:"type"`
	Nullable       *bool            `yaml:"nullable"`
	Partner        string           `yaml:"partner"`
	ContainsTarget bool             `yaml:"contains_target"`
	OnDelete       string           `yaml:"on_delete"`
	Constraints    []yamlConstraint `yaml:"constraints"`

	pos position
}

type yamlConstraint struct {
	Property           string `yaml:"property"`
	ReferencedProperty string `yaml:"referenced_property"`

	pos position
}

type yamlMember struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value"`

	pos position
}

type yamlOperation struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"` // action or function
	Bound      bool            `yaml:"bound"`
	Composable bool            `yaml:"composable"`
	Returns    *yamlTypeRef    `yaml:"returns"`
	Parameters []yamlParameter `yaml:"parameters"`

	pos position
}

type yamlParameter struct {
	Name        string `yaml:"name"`
	yamlTypeRef `yaml:",inline"`

	pos position
}

type yamlTerm struct {
	Name        string `yaml:"name"`
	yamlTypeRef `yaml:",inline"`
	AppliesTo   []string `yaml:"applies_to"`
	Default     string   `yaml:"default"`

	pos position
}

type yamlContainer struct {
	Name            string                 `yaml:"name"`
	EntitySets      []yamlNavigationSource `yaml:"entity_sets"`
	Singletons      []yamlNavigationSource `yaml:"singletons"`
	ActionImports   []yamlImport           `yaml:"action_imports"`
	FunctionImports []yamlImport           `yaml:"function_imports"`

	pos position
}

type yamlNavigationSource struct {
	Name                     string        `yaml:"name"`
	Type                     string        `yaml:"type"`
	IncludeInServiceDocument *bool         `yaml:"include_in_service_document"`
	Bindings                 []yamlBinding `yaml:"bindings"`

	pos position
}

type yamlBinding struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`

	pos position
}

type yamlImport struct {
	Name      string `yaml:"name"`
	Operation string `yaml:"operation"`

	pos position
}

type yamlAnnotation struct {
	Target    string    `yaml:"target"`
	Term      string    `yaml:"term"`
	Qualifier string    `yaml:"qualifier"`
	Value     yaml.Node `yaml:"value"`

	pos position
}

type yamlDirect struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Value     any    `yaml:"value"`

	pos position
}

// The UnmarshalYAML methods below record where each entry starts so the
// built elements carry source locations.

func (d *yamlDocument) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlDocument
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}
	d.pos = positionOf(node)
	return nil
}

func (t *yamlType) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlType
	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}
	t.pos = positionOf(node)
	return nil
}

func (p *yamlProperty) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlProperty
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.pos = positionOf(node)
	return nil
}

func (n *yamlNavigation) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlNavigation
	if err := node.Decode((*plain)(n)); err != nil {
		return err
	}
	n.pos = positionOf(node)
	return nil
}

func (c *yamlConstraint) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlConstraint
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.pos = positionOf(node)
	return nil
}

func (m *yamlMember) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlMember
	if err := node.Decode((*plain)(m)); err != nil {
		return err
	}
	m.pos = positionOf(node)
	return nil
}

func (o *yamlOperation) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlOperation
	if err := node.Decode((*plain)(o)); err != nil {
		return err
	}
	o.pos = positionOf(node)
	return nil
}

func (p *yamlParameter) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlParameter
	if err := node.Decode((*plain)(p)); err != nil {
		return err
	}
	p.pos = positionOf(node)
	return nil
}

func (t *yamlTerm) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlTerm
	if err := node.Decode((*plain)(t)); err != nil {
		return err
	}
	t.pos = positionOf(node)
	return nil
}

func (c *yamlContainer) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlContainer
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	c.pos = positionOf(node)
	return nil
}

func (s *yamlNavigationSource) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlNavigationSource
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.pos = positionOf(node)
	return nil
}

func (b *yamlBinding) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlBinding
	if err := node.Decode((*plain)(b)); err != nil {
		return err
	}
	b.pos = positionOf(node)
	return nil
}

func (i *yamlImport) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlImport
	if err := node.Decode((*plain)(i)); err != nil {
		return err
	}
	i.pos = positionOf(node)
	return nil
}

func (a *yamlAnnotation) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlAnnotation
	if err := node.Decode((*plain)(a)); err != nil {
		return err
	}
	a.pos = positionOf(node)
	return nil
}

func (d *yamlDirect) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlDirect
	if err := node.Decode((*plain)(d)); err != nil {
		return err
	}
	d.pos = positionOf(node)
	return nil
}

// parseYAMLFile reads and parses a model description file.
func parseYAMLFile(path string) (*yamlDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseYAMLBytes(data, path)
}

// parseYAMLBytes parses YAML bytes into the intermediate structure.
func parseYAMLBytes(data []byte, sourcePath string) (*yamlDocument, error) {
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	doc.path = sourcePath
	return &doc, nil
}
