package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("resumedate", func(fl validator.FieldLevel) bool {
		_, _, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate validates the Resume using the validator. Nested list entries are
// checked individually, so an error names the offending entry by index.
func (r *Resume) Validate() error {
	return validate.Struct(r)
}

// Validate validates the EnhanceRequest using the validator.
func (r *EnhanceRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SummaryRequest using the validator.
func (r *SummaryRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the KeywordRequest using the validator.
func (r *KeywordRequest) Validate() error {
	return validate.Struct(r)
}
