// Package validation checks registry input and configuration.
//
// Struct tag validation (go-playground/validator) is used for configuration
// structs and adds an "entryname" tag for registry keys. The fluent Validator
// collects field errors programmatically. Both report failures as an
// INVALID_INPUT AppError carrying per-field details.
//
//	type Binding struct {
//	    Name string   `mapstructure:"name" validate:"required,entryname"`
//	    Deps []string `mapstructure:"deps" validate:"dive,entryname"`
//	}
//	err := validation.Validate(b)
//
//	err := validation.New().EntryName("name", name).Validate()
package validation
