// Package rendering realizes layout documents as screen markup, PDF and DOCX.
package rendering

import (
	"errors"
	"fmt"
)

// TemplateError represents an error parsing or executing a screen template
type TemplateError struct {
	Template string
	Message  string
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error (%s): %s: %v", e.Template, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error (%s): %s", e.Template, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a generation failure in one output format. It is
// distinct from lookup failures so callers can answer with a format-specific
// error instead of "not found".
type RenderError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error (%s): %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("render error (%s): %s", e.Format, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// IsRenderError reports whether err is or wraps a *RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// guard runs fn and converts a panic into a RenderError for format.
func guard(format Format, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &RenderError{Format: format, Message: "generator panicked", Cause: fmt.Errorf("%v", p)}
		}
	}()
	return fn()
}
