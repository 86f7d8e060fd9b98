package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation issue, reported to clients
// in the `errors` array of a 422 response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ToFieldErrors converts gin binding/validator errors into per-field messages.
// Returns false when err is not a validation error (e.g. malformed JSON).
func ToFieldErrors(err error) ([]FieldError, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	fieldErrors := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: getErrorMessage(fe),
		})
	}
	return fieldErrors, true
}

// getErrorMessage returns a user-friendly message for a validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", humanize(fe.Field()))
	case "email":
		return "Valid email is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", humanize(fe.Field()), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", humanize(fe.Field()), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", humanize(fe.Field()))
	}
}

// humanize turns a camelCase JSON field name into a readable label.
// Example: firstName -> First name
func humanize(field string) string {
	if field == "" {
		return field
	}

	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
