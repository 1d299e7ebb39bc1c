// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator validates bound request DTOs by their `validate` tags.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with required-struct checks enabled.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
