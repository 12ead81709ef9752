package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator bundles plain struct validation with the business validator so
// handlers and services share one instance.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{
		validate: validator.New(),
		business: NewBusinessValidator(),
	}
}

// ValidateStruct runs tag-based validation only.
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	if err := v.validate.Struct(s); err != nil {
		return ToValidationErrors(err)
	}
	return nil
}

// GetBusinessValidator returns the business rule validator.
func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}
