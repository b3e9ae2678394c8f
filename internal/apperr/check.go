package apperr

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Required fails with a *ValidationError when v is blank.
func Required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return Invalid(field, "is required")
	}
	return nil
}

// Email fails with a *ValidationError when v is blank or not an address.
func Email(field, v string) error {
	if err := Required(field, v); err != nil {
		return err
	}
	if err := validate.Var(strings.TrimSpace(v), "email"); err != nil {
		return Invalid(field, "is not a valid email address")
	}
	return nil
}

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
