package yamlmodel

import (
	"fmt"

	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
)

// ErrorType classifies a load failure.
type ErrorType string

const (
	// ErrorTypeIO is a file that cannot be read or is too large.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeSyntax is malformed YAML.
	ErrorTypeSyntax ErrorType = "syntax"
	// ErrorTypeStructure is well-formed YAML that does not describe a model,
	// such as an unknown type kind or an expression of unknown shape.
	ErrorTypeStructure ErrorType = "structure"
)

// Error is a problem that prevents a model description from being loaded.
// Names that do not resolve are not load errors: they become placeholder
// elements reported by validation.
type Error struct {
	Type       ErrorType
	Message    string
	Location   edmErrors.Location
	Suggestion string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Type, e.Message)
	if e.Location.IsValid() {
		msg = e.Location.String() + ": " + msg
	}
	if e.Suggestion != "" {
		msg += " (" + e.Suggestion + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
