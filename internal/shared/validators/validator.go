package validators

import (
	"github.com/go-playground/validator/v10"
)

// Aliases over go-playground/validator so config code does not import the
// library directly.
type Validate = validator.Validate

type ValidationErrors = validator.ValidationErrors

type FieldError = validator.FieldError

// New creates a validator instance for struct-tag validation.
func New() *Validate {
	return validator.New()
}
