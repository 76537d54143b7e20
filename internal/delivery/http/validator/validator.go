// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	"strings"

	domainerrors "fintrack/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator runs struct tag validation for c.Validate.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator with required-struct checks enabled.
func New() *CustomValidator {
	return &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate reports failed `required` tags as ErrMissingField naming the
// offending JSON fields.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	missing := make([]string, 0, len(fieldErrs))
	invalid := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		name := jsonName(fieldErr.Field())
		if fieldErr.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}

	if len(missing) > 0 {
		return domainerrors.ErrMissingField.WithDetails("missing: " + strings.Join(missing, ", "))
	}

	return domainerrors.ErrInvalidInput.WithDetails("invalid: " + strings.Join(invalid, ", "))
}

func jsonName(field string) string {
	if field == "" {
		return field
	}

	return strings.ToLower(field[:1]) + field[1:]
}
