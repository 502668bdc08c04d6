package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/kbukum/dingu/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// EntryName checks that value can be used as a registry key: non-blank,
// no surrounding whitespace and no control characters.
func (v *Validator) EntryName(field, value string) *Validator {
	if msg := entryNameProblem(value); msg != "" {
		v.AddError(field, msg)
	}
	return v
}

// EntryNames applies EntryName to every element, reporting field[i].
func (v *Validator) EntryNames(field string, values []string) *Validator {
	for i, value := range values {
		v.EntryName(fmt.Sprintf("%s[%d]", field, i), value)
	}
	return v
}

// OptionalUUID checks if a non-empty string is a valid UUID.
func (v *Validator) OptionalUUID(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := uuid.Parse(value); err != nil {
		v.AddError(field, "must be a valid UUID")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// Required validates a single required field and returns an error if empty.
func Required(field, value string) error {
	v := New().Required(field, value)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// EntryName validates a single registry key.
func EntryName(field, value string) error {
	v := New().EntryName(field, value)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func entryNameProblem(value string) string {
	if strings.TrimSpace(value) == "" {
		return "is required"
	}
	if strings.TrimSpace(value) != value {
		return "must not start or end with whitespace"
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return "must not contain control characters"
		}
	}
	return ""
}
