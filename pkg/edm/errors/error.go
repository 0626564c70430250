package errors

import (
	"fmt"
	"strings"
)

// Severity classifies an error for reporting. It is informational only:
// any error, whatever its severity, makes a model invalid.
type Severity int

const (
	SeverityUndefined Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the display name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityError:
		return "Error"
	default:
		return "Undefined"
	}
}

// Location is the source position of a model element.
// The zero value is the generic location of an in-memory element.
type Location struct {
	File   string // Path to the model description
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String returns a human-readable representation of the location.
// Format: "file:line:column"
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has file and line information.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}

// EdmError is a single validation diagnostic.
type EdmError struct {
	Location   Location
	Code       ErrorCode
	Severity   Severity
	Message    string
	Extensions map[string]any
}

// New creates an error with SeverityError and an empty extension map.
func New(location Location, code ErrorCode, message string) *EdmError {
	return NewWithSeverity(location, code, message, SeverityError)
}

// NewWithSeverity creates an error with an explicit severity.
func NewWithSeverity(location Location, code ErrorCode, message string, severity Severity) *EdmError {
	return &EdmError{
		Location:   location,
		Code:       code,
		Severity:   severity,
		Message:    message,
		Extensions: make(map[string]any),
	}
}

// IsCritical reports whether the error is interface-critical.
func (e *EdmError) IsCritical() bool {
	return IsCritical(e.Code)
}

// WithExtension sets an extension entry and returns the error.
func (e *EdmError) WithExtension(key string, value any) *EdmError {
	if e.Extensions == nil {
		e.Extensions = make(map[string]any)
	}
	e.Extensions[key] = value
	return e
}

// Suggestion returns the "suggestion" extension, if any.
func (e *EdmError) Suggestion() string {
	s, _ := e.Extensions[ExtensionSuggestion].(string)
	return s
}

// ExtensionSuggestion is the extension key holding a suggested fix.
const ExtensionSuggestion = "suggestion"

// String renders "{code} : {message}[ : {location}][ : {severity}]".
func (e *EdmError) String() string {
	var sb strings.Builder
	sb.WriteString(e.Code.String())
	sb.WriteString(" : ")
	sb.WriteString(e.Message)
	if e.Location.IsValid() {
		sb.WriteString(" : ")
		sb.WriteString(e.Location.String())
	}
	if e.Severity != SeverityUndefined {
		sb.WriteString(" : ")
		sb.WriteString(e.Severity.String())
	}
	return sb.String()
}

// Error implements the error interface.
func (e *EdmError) Error() string {
	return e.String()
}

// ErrorList represents a collection of errors encountered during validation.
// It allows accumulating multiple errors instead of failing on the first error.
type ErrorList struct {
	Errors []*EdmError
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*EdmError, 0),
	}
}

// Add appends errors to the list.
func (el *ErrorList) Add(errs ...*EdmError) {
	el.Errors = append(el.Errors, errs...)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(location Location, code ErrorCode, message string) {
	el.Add(New(location, code, message))
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// HasCriticalErrors returns true if any error is interface-critical.
func (el *ErrorList) HasCriticalErrors() bool {
	for _, err := range el.Errors {
		if err.IsCritical() {
			return true
		}
	}
	return false
}

// Error implements the error interface.
// It returns all errors formatted one per line.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n", el.Count()))
	for _, err := range el.Errors {
		sb.WriteString("  ")
		sb.WriteString(err.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise returns the error list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByCode returns all errors with the given code.
func (el *ErrorList) ByCode(code ErrorCode) []*EdmError {
	var result []*EdmError
	for _, err := range el.Errors {
		if err.Code == code {
			result = append(result, err)
		}
	}
	return result
}

// HasCode returns true if the list contains at least one error with the given code.
func (el *ErrorList) HasCode(code ErrorCode) bool {
	for _, err := range el.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}
