package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSubmission is matched by every ValidationError.
var ErrInvalidSubmission = errors.New("invalid submission")

// ValidationError carries a message per offending field, keyed by the
// field's form name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSubmission
}

// Validator wraps go-playground/validator and converts its errors into
// ValidationError.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their form names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "" || name == "-" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			return name[:i]
		}
		return name
	})

	return &Validator{v: v}
}

func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return &ValidationError{Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	default:
		return "is invalid"
	}
}
