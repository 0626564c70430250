package validator

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/typecheck"
)

// Context is shared by all rules during one semantic pass. It collects
// errors and answers whether a node is already known to be broken.
type Context struct {
	model   edm.Model
	isBad   func(edm.Element) bool
	catalog edmErrors.Catalog
	checker *typecheck.Checker
	version edm.Version
	errors  []*edmErrors.EdmError
}

func newContext(model edm.Model, isBad func(edm.Element) bool, catalog edmErrors.Catalog, version edm.Version) *Context {
	return &Context{
		model:   model,
		isBad:   isBad,
		catalog: catalog,
		checker: typecheck.New(catalog),
		version: version,
	}
}

// Model returns the model being validated.
func (c *Context) Model() edm.Model { return c.model }

// Version returns the EDM version the model is validated against.
func (c *Context) Version() edm.Version { return c.version }

// Checker returns the type checker, bound to the same message catalog.
func (c *Context) Checker() *typecheck.Checker { return c.checker }

// IsBad reports whether n failed structural validation. Rules use it to
// avoid repeating complaints about nodes that are already reported.
func (c *Context) IsBad(n edm.Element) bool {
	if edm.IsNil(n) {
		return false
	}
	return c.isBad(n)
}

// AddError records an error with an explicit message.
func (c *Context) AddError(loc edmErrors.Location, code edmErrors.ErrorCode, message string) *edmErrors.EdmError {
	err := edmErrors.New(loc, code, message)
	c.errors = append(c.errors, err)
	return err
}

// Report records an error whose message comes from the catalog.
func (c *Context) Report(loc edmErrors.Location, code edmErrors.ErrorCode, args ...any) *edmErrors.EdmError {
	return c.AddError(loc, code, c.Message(code, args...))
}

// AddErrors records errors produced elsewhere, for example by the type
// checker.
func (c *Context) AddErrors(errs ...*edmErrors.EdmError) {
	c.errors = append(c.errors, errs...)
}

// Message renders the catalog message for code.
func (c *Context) Message(code edmErrors.ErrorCode, args ...any) string {
	return c.catalog.Message(code, args...)
}

// Errors returns the errors recorded so far.
func (c *Context) Errors() []*edmErrors.EdmError {
	return c.errors
}
