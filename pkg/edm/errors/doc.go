// Package errors defines the diagnostic records produced by EDM model
// validation.
//
// Every diagnostic is an *EdmError carrying a location, an ErrorCode, a
// Severity, a message and an open extension map. Codes are partitioned: the
// contiguous range InterfaceCriticalPropertyValueMustNotBeNull ..
// InterfaceCriticalCycleInTypeHierarchy marks a structurally malformed object
// graph (see IsCritical); every other code is a semantic rule violation.
//
// # Error Format
//
// EdmError.String renders
//
//	{code} : {message}[ : {location}][ : {severity}]
//
// where the location segment appears only for a real source position and the
// severity segment only when the severity is not SeverityUndefined:
//
//	KeyMissingOnEntityType : The entity type 'NS.Customer' has no key defined. ... : model.yaml:12:7 : Error
//
// # Messages
//
// Messages come from a Catalog keyed by code. DefaultCatalog holds the
// built-in templates; TemplateCatalog.Merge applies overrides loaded from a
// message file.
//
// # Accumulating Errors
//
//	errList := errors.NewErrorList()
//	errList.AddError(loc, errors.InvalidName, "...")
//	if errList.HasErrors() {
//	    return errList.ToError()
//	}
package errors
