package validator

import (
	"reflect"

	"github.com/OData/odata.net-sub135/pkg/edm"
)

// runSemantic applies the rules to every sound node, in visit order and,
// per node, in rule registration order.
func runSemantic(rules *RuleSet, ctx *Context, nodes []edm.Element) {
	for _, n := range nodes {
		if ctx.IsBad(n) {
			continue
		}
		for _, rule := range rules.rulesFor(reflect.TypeOf(n)) {
			rule.run(ctx, n)
		}
	}
}
