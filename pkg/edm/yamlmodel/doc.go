// Package yamlmodel loads entity data models described in YAML.
//
// A description declares one namespace with its types, operations, terms,
// entity container and annotations. Every element records the file, line
// and column it was declared at, so validation errors point back into the
// description.
//
// # Basic Usage
//
//	model, err := yamlmodel.NewParser().Parse("models/sales.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := validator.New()
//	valid, errs := v.Validate(model)
//
// Several files load into a single model and may reference each other:
//
//	model, err := yamlmodel.NewParser().ParseMulti([]string{
//	    "models/common.yaml",
//	    "models/sales.yaml",
//	})
//
// # Format
//
//	namespace: Sales
//	types:
//	  - name: Customer
//	    key: [ID]
//	    properties:
//	      - {name: ID, type: Edm.Int32, nullable: false}
//	      - {name: Name, type: Edm.String, max_length: 100}
//	    navigation:
//	      - {name: Orders, type: Collection(Sales.Order), partner: Customer}
//	  - name: Color
//	    kind: enum
//	    members: [{name: Red}, {name: Blue}]
//	container:
//	  name: Default
//	  entity_sets:
//	    - name: Customers
//	      type: Customer
//	      bindings: [{path: Orders, target: Orders}]
//	annotations:
//	  - target: Sales.Customer/Name
//	    term: Core.Description
//	    value: The display name
//
// # Unresolved References
//
// A name that does not resolve is not a load error. It becomes a
// placeholder element that validation reports at the place it was used,
// so one pass over the model yields every broken reference. Load errors
// are reserved for I/O failures, malformed YAML and entries of unknown
// shape; they are returned as *Error values, several joined with
// errors.Join.
package yamlmodel
