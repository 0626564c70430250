package validator

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

const (
	MaxNameLength      = 480
	MaxNamespaceLength = 512
)

var simpleIdentifier = regexp.MustCompile(`^[\p{L}\p{Nl}_][\p{L}\p{Nl}\p{Nd}\p{Mn}\p{Mc}\p{Pc}\p{Cf}]*$`)

// reservedNamespaces may not be used by user schemas.
var reservedNamespaces = []string{edm.CoreNamespace, "Transient"}

var NamedElementNameIsTooLong = NewRule("NamedElementNameIsTooLong",
	func(ctx *Context, n edm.NamedElement) {
		if utf8.RuneCountInString(n.Name()) > MaxNameLength {
			ctx.Report(n.Location(), edmErrors.NameTooLong, n.Name(), MaxNameLength)
		}
	})

var NamedElementNameIsNotAllowed = NewRule("NamedElementNameIsNotAllowed",
	func(ctx *Context, n edm.NamedElement) {
		name := n.Name()
		if utf8.RuneCountInString(name) <= MaxNameLength && !simpleIdentifier.MatchString(name) {
			ctx.Report(n.Location(), edmErrors.InvalidName, name)
		}
	})

var SchemaElementNamespaceIsNotAllowed = NewRule("SchemaElementNamespaceIsNotAllowed",
	func(ctx *Context, n edm.SchemaElement) {
		ns := n.Namespace()
		if utf8.RuneCountInString(ns) > MaxNamespaceLength {
			return
		}
		for _, part := range strings.Split(ns, ".") {
			if !simpleIdentifier.MatchString(part) {
				ctx.Report(n.Location(), edmErrors.InvalidNamespaceName, ns, MaxNamespaceLength)
				return
			}
		}
	})

var SchemaElementNamespaceIsTooLong = NewRule("SchemaElementNamespaceIsTooLong",
	func(ctx *Context, n edm.SchemaElement) {
		if utf8.RuneCountInString(n.Namespace()) > MaxNamespaceLength {
			ctx.Report(n.Location(), edmErrors.InvalidNamespaceName, n.Namespace(), MaxNamespaceLength)
		}
	})

var SchemaElementSystemNamespaceEncountered = NewRule("SchemaElementSystemNamespaceEncountered",
	func(ctx *Context, n edm.SchemaElement) {
		ns := n.Namespace()
		for _, reserved := range reservedNamespaces {
			if ns == reserved {
				ctx.Report(n.Location(), edmErrors.SystemNamespaceEncountered, ns)
				return
			}
		}
	})
