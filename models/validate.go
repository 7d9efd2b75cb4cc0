package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every struct validation failure.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

// Validate checks struct tags on any model, including nested locations.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError reports the first failing field.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Namespace()
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		case "gte":
			return fmt.Errorf("%w: %s must be at least %s", ErrValidation, field, e.Param())
		case "lte":
			return fmt.Errorf("%w: %s must not exceed %s", ErrValidation, field, e.Param())
		case "gt":
			return fmt.Errorf("%w: %s must be greater than %s", ErrValidation, field, e.Param())
		case "gtfield":
			return fmt.Errorf("%w: %s must be after %s", ErrValidation, field, e.Param())
		case "oneof":
			return fmt.Errorf("%w: %s must be one of [%s]", ErrValidation, field, e.Param())
		default:
			return fmt.Errorf("%w: %s failed %s", ErrValidation, field, e.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}
