// Package edmval loads and validates entity data models.
//
// It ties together the YAML loader in package yamlmodel and the validator
// in package validator for callers that only need a verdict:
//
//	model, err := edmval.LoadAndValidate([]string{"models/sales.yaml"})
//	if err != nil {
//	    var list *errors.ErrorList
//	    if stderrors.As(err, &list) {
//	        for _, e := range list.Errors {
//	            fmt.Println(e)
//	        }
//	    }
//	}
//
// Use the subpackages directly to inspect a model before validation, to
// supply custom rules or to validate models built in code.
package edmval
