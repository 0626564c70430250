package edmval

import (
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/memory"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
	"github.com/OData/odata.net-sub135/pkg/edm/yamlmodel"
)

// LoadAndValidate is a convenience function that loads the model described
// by the given files and validates it. Validation errors are returned as an
// *errors.ErrorList.
func LoadAndValidate(paths []string, opts ...validator.Option) (*memory.Model, error) {
	model, err := Load(paths...)
	if err != nil {
		return nil, err
	}
	if err := ValidateModel(model, opts...); err != nil {
		return nil, err
	}
	return model, nil
}

// LoadAndValidateBytes loads and validates a model description held in
// memory.
func LoadAndValidateBytes(data []byte, sourcePath string, opts ...validator.Option) (*memory.Model, error) {
	model, err := yamlmodel.NewParser().ParseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	if err := ValidateModel(model, opts...); err != nil {
		return nil, err
	}
	return model, nil
}

// Load loads a model without validating it.
func Load(paths ...string) (*memory.Model, error) {
	return yamlmodel.NewParser().ParseMulti(paths)
}

// ValidateModel validates model and returns its errors as an
// *errors.ErrorList, or nil when the model is valid.
func ValidateModel(model edm.Model, opts ...validator.Option) error {
	v, err := validator.New(opts...)
	if err != nil {
		return err
	}
	_, errs := v.Validate(model)
	list := edmErrors.NewErrorList()
	list.Add(errs...)
	return list.ToError()
}
