package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/OData/odata.net-sub135/pkg/edm"
)

// ErrDuplicateRule is returned when a rule set would contain the same rule
// twice.
var ErrDuplicateRule = errors.New("duplicate validation rule")

// Rule is a semantic check bound to one capability. Rules are compared by
// identity: the same *Rule may appear at most once in a rule set.
type Rule struct {
	name       string
	capability reflect.Type
	run        func(ctx *Context, node edm.Element)
}

// NewRule creates a rule that runs fn on every structurally sound node
// implementing T.
func NewRule[T edm.Element](name string, fn func(ctx *Context, node T)) *Rule {
	return &Rule{
		name:       name,
		capability: reflect.TypeFor[T](),
		run: func(ctx *Context, node edm.Element) {
			fn(ctx, any(node).(T))
		},
	}
}

// Name returns the rule name.
func (r *Rule) Name() string { return r.name }

// Capability returns the capability the rule applies to.
func (r *Rule) Capability() reflect.Type { return r.capability }

func (r *Rule) String() string {
	return fmt.Sprintf("%s(%s)", r.name, r.capability)
}

// RuleSet is an immutable, ordered collection of rules. It caches, per
// concrete node type, the rules that apply to it; the cache is safe for
// concurrent use.
type RuleSet struct {
	rules []*Rule
	cache sync.Map // reflect.Type -> []*Rule
}

// NewRuleSet builds a rule set. It fails if a rule is listed twice.
func NewRuleSet(rules ...*Rule) (*RuleSet, error) {
	return NewRuleSetFrom(nil, rules...)
}

// NewRuleSetFrom builds a rule set holding the rules of base followed by
// rules. It fails if the result would contain a rule twice.
func NewRuleSetFrom(base *RuleSet, rules ...*Rule) (*RuleSet, error) {
	var all []*Rule
	if base != nil {
		all = append(all, base.rules...)
	}
	all = append(all, rules...)

	seen := make(map[*Rule]bool, len(all))
	for _, rule := range all {
		if rule == nil {
			return nil, errors.New("nil validation rule")
		}
		if seen[rule] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, rule)
		}
		seen[rule] = true
	}
	return &RuleSet{rules: all}, nil
}

// MustRuleSet is like NewRuleSetFrom but panics on error.
func MustRuleSet(base *RuleSet, rules ...*Rule) *RuleSet {
	set, err := NewRuleSetFrom(base, rules...)
	if err != nil {
		panic(err)
	}
	return set
}

// Rules returns the rules in registration order.
func (s *RuleSet) Rules() []*Rule {
	return append([]*Rule(nil), s.rules...)
}

// Len returns the number of rules in the set.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// rulesFor returns the rules applying to t, in registration order.
func (s *RuleSet) rulesFor(t reflect.Type) []*Rule {
	if v, ok := s.cache.Load(t); ok {
		return v.([]*Rule)
	}
	var applicable []*Rule
	for _, rule := range s.rules {
		if t.Implements(rule.capability) {
			applicable = append(applicable, rule)
		}
	}
	v, _ := s.cache.LoadOrStore(t, applicable)
	return v.([]*Rule)
}
