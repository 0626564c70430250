package yamlmodel

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/OData/odata.net-sub135/pkg/edm"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
)

// isoDuration matches the day-time subset of ISO 8601 durations used by
// Edm.Duration, for example "P1DT2H30M" or "-PT0.5S".
var isoDuration = regexp.MustCompile(`^(-)?P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// expression builds an annotation expression from a YAML value. Plain
// scalars and sequences are literals and collections. A mapping with a
// single key names the expression form:
//
//	{date: 2024-01-31}
//	{path: Address/City}
//	{record: {type: Sales.Address, properties: {City: Oslo}}}
//	{if: [{path: IsActive}, "yes", "no"]}
//	{enum_member: Sales.Color/Red Sales.Color/Blue}
//	{apply: {function: Sales.Concat, args: [a, b]}}
func (b *builder) expression(doc *yamlDocument, node *yaml.Node) edm.Expression {
	expr := b.buildExpression(doc, node)
	if expr == nil {
		return nil
	}
	if l, ok := expr.(memory.Locatable); ok {
		l.SetLocation(positionOf(node).at(doc.path))
	}
	return expr
}

func (b *builder) buildExpression(doc *yamlDocument, node *yaml.Node) edm.Expression {
	pos := positionOf(node)
	switch node.Kind {
	case yaml.AliasNode:
		return b.buildExpression(doc, node.Alias)
	case yaml.ScalarNode:
		return b.scalar(doc, node)
	case yaml.SequenceNode:
		return memory.NewCollectionExpression(nil, b.expressions(doc, node.Content)...)
	case yaml.MappingNode:
	default:
		b.fail(doc, pos, "unsupported expression")
		return nil
	}

	if len(node.Content) != 2 {
		b.fail(doc, pos, "an expression mapping has exactly one key naming its form")
		return nil
	}
	form, arg := node.Content[0].Value, node.Content[1]

	switch form {
	case "string":
		return memory.NewStringConstant(arg.Value)
	case "int":
		v, err := strconv.ParseInt(arg.Value, 0, 64)
		if err != nil {
			b.fail(doc, pos, "invalid integer %q", arg.Value)
			return nil
		}
		return memory.NewIntegerConstant(v)
	case "bool":
		v, err := strconv.ParseBool(arg.Value)
		if err != nil {
			b.fail(doc, pos, "invalid boolean %q", arg.Value)
			return nil
		}
		return memory.NewBooleanConstant(v)
	case "float", "decimal":
		v, err := strconv.ParseFloat(arg.Value, 64)
		if err != nil {
			b.fail(doc, pos, "invalid %s %q", form, arg.Value)
			return nil
		}
		if form == "decimal" {
			return memory.NewDecimalConstant(v)
		}
		return memory.NewFloatingConstant(v)
	case "guid":
		v, err := uuid.Parse(arg.Value)
		if err != nil {
			b.fail(doc, pos, "invalid guid %q", arg.Value)
			return nil
		}
		return memory.NewGuidConstant(v)
	case "date":
		v, err := time.Parse(time.DateOnly, arg.Value)
		if err != nil {
			b.fail(doc, pos, "invalid date %q", arg.Value)
			return nil
		}
		return memory.NewDateConstant(v)
	case "date_time_offset":
		v, err := time.Parse(time.RFC3339Nano, arg.Value)
		if err != nil {
			b.fail(doc, pos, "invalid date_time_offset %q", arg.Value)
			return nil
		}
		return memory.NewDateTimeOffsetConstant(v)
	case "duration":
		v, ok := parseDuration(arg.Value)
		if !ok {
			b.fail(doc, pos, "invalid duration %q", arg.Value)
			return nil
		}
		return memory.NewDurationConstant(v)
	case "time_of_day":
		v, ok := parseTimeOfDay(arg.Value)
		if !ok {
			b.fail(doc, pos, "invalid time_of_day %q", arg.Value)
			return nil
		}
		return memory.NewTimeOfDayConstant(v)
	case "binary":
		v, err := base64.StdEncoding.DecodeString(arg.Value)
		if err != nil {
			b.fail(doc, pos, "binary values are base64 encoded: %v", err)
			return nil
		}
		return memory.NewBinaryConstant(v)
	case "path":
		return memory.NewPathExpression(splitPath(arg.Value)...)
	case "property_path":
		return memory.NewPropertyPathExpression(splitPath(arg.Value)...)
	case "navigation_property_path":
		return memory.NewNavigationPropertyPathExpression(splitPath(arg.Value)...)
	case "record":
		return b.record(doc, arg)
	case "collection":
		return b.collection(doc, arg)
	case "if":
		if arg.Kind != yaml.SequenceNode || len(arg.Content) != 3 {
			b.fail(doc, pos, "if takes a list of test, then and else")
			return nil
		}
		return memory.NewIfExpression(
			b.expression(doc, arg.Content[0]),
			b.expression(doc, arg.Content[1]),
			b.expression(doc, arg.Content[2]),
		)
	case "cast", "is_of":
		fields := mappingFields(arg)
		typeNode, valueNode := fields["type"], fields["value"]
		if typeNode == nil || valueNode == nil {
			b.fail(doc, pos, "%s takes a type and a value", form)
			return nil
		}
		typ := b.typeReference(doc, positionOf(typeNode), yamlTypeRef{Type: typeNode.Value})
		operand := b.expression(doc, valueNode)
		if form == "cast" {
			return memory.NewCastExpression(operand, typ)
		}
		return memory.NewIsTypeExpression(operand, typ)
	case "enum_member":
		return b.enumMembers(doc, positionOf(arg), arg.Value)
	case "apply":
		return b.apply(doc, arg)
	case "labeled":
		fields := mappingFields(arg)
		if fields["name"] == nil || fields["value"] == nil {
			b.fail(doc, pos, "labeled takes a name and a value")
			return nil
		}
		return memory.NewLabeledExpression(fields["name"].Value, b.expression(doc, fields["value"]))
	case "null":
		return memory.NewNullExpression()
	}
	b.fail(doc, pos, "unknown expression form %q", form)
	return nil
}

func (b *builder) expressions(doc *yamlDocument, nodes []*yaml.Node) []edm.Expression {
	out := make([]edm.Expression, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, b.expression(doc, n))
	}
	return out
}

// scalar maps a plain YAML scalar to a literal by its resolved tag.
func (b *builder) scalar(doc *yamlDocument, node *yaml.Node) edm.Expression {
	switch node.ShortTag() {
	case "!!null":
		return memory.NewNullExpression()
	case "!!bool":
		var v bool
		if err := node.Decode(&v); err == nil {
			return memory.NewBooleanConstant(v)
		}
	case "!!int":
		if v, err := strconv.ParseInt(strings.ReplaceAll(node.Value, "_", ""), 0, 64); err == nil {
			return memory.NewIntegerConstant(v)
		}
	case "!!float":
		var v float64
		if err := node.Decode(&v); err == nil {
			return memory.NewFloatingConstant(v)
		}
	default:
		return memory.NewStringConstant(node.Value)
	}
	b.fail(doc, positionOf(node), "invalid %s literal %q", strings.TrimPrefix(node.ShortTag(), "!!"), node.Value)
	return nil
}

func (b *builder) record(doc *yamlDocument, node *yaml.Node) edm.Expression {
	fields := mappingFields(node)
	var declared edm.TypeReference
	if t := fields["type"]; t != nil {
		declared = b.typeReference(doc, positionOf(t), yamlTypeRef{Type: t.Value})
	}
	var props []edm.PropertyConstructor
	if p := fields["properties"]; p != nil {
		if p.Kind != yaml.MappingNode {
			b.fail(doc, positionOf(p), "record properties must be a mapping")
			return nil
		}
		for i := 0; i+1 < len(p.Content); i += 2 {
			c := memory.NewPropertyConstructor(p.Content[i].Value, b.expression(doc, p.Content[i+1]))
			c.SetLocation(positionOf(p.Content[i]).at(doc.path))
			props = append(props, c)
		}
	}
	return memory.NewRecordExpression(declared, props...)
}

func (b *builder) collection(doc *yamlDocument, node *yaml.Node) edm.Expression {
	if node.Kind == yaml.SequenceNode {
		return memory.NewCollectionExpression(nil, b.expressions(doc, node.Content)...)
	}
	fields := mappingFields(node)
	var declared edm.TypeReference
	if t := fields["type"]; t != nil {
		declared = b.typeReference(doc, positionOf(t), yamlTypeRef{Type: t.Value})
	}
	var items []edm.Expression
	if i := fields["items"]; i != nil {
		items = b.expressions(doc, i.Content)
	}
	return memory.NewCollectionExpression(declared, items...)
}

// enumMembers resolves space separated "Namespace.Enum/Member" references.
func (b *builder) enumMembers(doc *yamlDocument, pos position, value string) edm.Expression {
	var members []edm.EnumMember
	for _, ref := range strings.Fields(value) {
		typeName, memberName, _ := strings.Cut(ref, "/")
		var member edm.EnumMember
		if enum, ok := b.types[qualify(doc, typeName)].(edm.EnumType); ok {
			for _, m := range enum.Members() {
				if m.Name() == memberName {
					member = m
					break
				}
			}
		}
		if edm.IsNil(member) {
			member = memory.NewUnresolvedEnumMember(ref, pos.at(doc.path))
		}
		members = append(members, member)
	}
	return memory.NewEnumMemberExpression(members...)
}

func (b *builder) apply(doc *yamlDocument, node *yaml.Node) edm.Expression {
	fields := mappingFields(node)
	fn := fields["function"]
	if fn == nil {
		b.fail(doc, positionOf(node), "apply takes a function")
		return nil
	}
	full := qualify(doc, fn.Value)
	var function edm.Function
	for _, op := range b.operations[full] {
		if f, ok := op.(edm.Function); ok {
			function = f
			break
		}
	}
	if function == nil {
		function = memory.NewUnresolvedOperation(full, positionOf(fn).at(doc.path))
	}
	var args []edm.Expression
	if a := fields["args"]; a != nil {
		args = b.expressions(doc, a.Content)
	}
	return memory.NewApplyExpression(function, args...)
}

// mappingFields indexes the values of a mapping node by key.
func mappingFields(node *yaml.Node) map[string]*yaml.Node {
	fields := make(map[string]*yaml.Node)
	if node == nil || node.Kind != yaml.MappingNode {
		return fields
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	return fields
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// parseDuration accepts ISO 8601 day-time durations and Go duration
// strings.
func parseDuration(s string) (time.Duration, bool) {
	m := isoDuration.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "-P" || strings.HasSuffix(s, "T") {
		d, err := time.ParseDuration(s)
		return d, err == nil
	}
	var d time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute}
	for i, unit := range units {
		if m[i+2] != "" {
			n, err := strconv.ParseInt(m[i+2], 10, 64)
			if err != nil {
				return 0, false
			}
			d += time.Duration(n) * unit
		}
	}
	if m[5] != "" {
		secs, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return 0, false
		}
		d += time.Duration(secs * float64(time.Second))
	}
	if m[1] == "-" {
		d = -d
	}
	return d, true
}

// parseTimeOfDay parses "hh:mm[:ss[.fffffff]]" into the time since midnight.
func parseTimeOfDay(s string) (time.Duration, bool) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05.999999999"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond()), true
}
