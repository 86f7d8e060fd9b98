package validator

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the validator instance from Gin binding
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("failed to obtain validator engine")
	}
	return v, nil
}

// RegisterAll configures the shared validator engine. Field errors are
// reported under the JSON name of the field so clients see the same
// identifiers they sent.
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("failed to obtain validator engine: %w", err)
	}

	v.RegisterTagNameFunc(jsonTagName)

	slog.Info("shared validators registered")
	return nil
}

// jsonTagName reports a struct field under its JSON name.
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
