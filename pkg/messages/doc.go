// Package messages loads replacement texts for validation error messages.
//
// Validation errors are formatted from a catalog of templates keyed by error
// code. A YAML file can override any of them:
//
//	messages:
//	  KeyMissingOnEntityType: "Entity type %s needs a key."
//
// Catalog serves the merged templates and can be reloaded while
// validations run, which the watch command uses to pick up edits to the
// catalog file.
package messages
