package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kbukum/storefront/errors"
)

// FieldError is a validation failure for one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors.
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool { return len(v.errors) > 0 }

// Errors returns the collected field errors.
func (v *Validator) Errors() []FieldError { return v.errors }

// Validate returns nil, or an INVALID_INPUT AppError listing every field.
func (v *Validator) Validate() error {
	if !v.HasErrors() {
		return nil
	}
	return fieldsError(v.errors)
}

// Required fails when value is empty or whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OneOf fails when a non-empty value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value != "" && !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	}
	return v
}

// Custom fails with message when condition is false.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// RequireID returns MISSING_FIELD when id is blank. Cart operations use it
// before touching state.
func RequireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.MissingField(field)
	}
	return nil
}

func fieldsError(fields []FieldError) error {
	messages := make([]string, len(fields))
	for i, f := range fields {
		messages[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", fields)
}
