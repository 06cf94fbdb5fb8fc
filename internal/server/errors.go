package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/ai"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/thumbnail"
)

// ErrResumeNotFound indicates the resume does not exist
type ErrResumeNotFound struct {
	ID string
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrTemplateNotFound indicates an id missing from the catalog
type ErrTemplateNotFound struct {
	ID string
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
	Details []schemas.FieldError
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrShareTokenInvalid indicates a share link that is malformed, expired
// or revoked. It maps to 404 so share links do not leak resume existence.
type ErrShareTokenInvalid struct {
	Cause error
}

func (e *ErrShareTokenInvalid) Error() string {
	if e.Cause != nil {
		return "invalid share token: " + e.Cause.Error()
	}
	return "invalid share token"
}

func (e *ErrShareTokenInvalid) Unwrap() error {
	return e.Cause
}

// ErrFeatureDisabled indicates a collaborator that is not configured.
type ErrFeatureDisabled struct {
	Feature string
}

func (e *ErrFeatureDisabled) Error() string {
	return e.Feature + " is not enabled on this server"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrResumeNotFound
		noTemplate  *ErrTemplateNotFound
		noSession   *ErrSessionNotFound
		invalid     *ErrValidation
		badShare    *ErrShareTokenInvalid
		disabled    *ErrFeatureDisabled
		schemaErr   *schemas.ValidationError
		fieldErrs   validator.ValidationErrors
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &noTemplate), errors.As(err, &noSession), errors.As(err, &badShare),
		errors.Is(err, thumbnail.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &schemaErr), errors.As(err, &fieldErrs),
		errors.Is(err, ai.ErrNoSuchField):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &disabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the client-facing text for err. Render failures get a
// format-specific message and internal causes are not exposed.
func publicMessage(err error) string {
	var (
		renderErr *rendering.RenderError
		tmplErr   *rendering.TemplateError
		apiErr    *ai.APICallError
		badShare  *ErrShareTokenInvalid
	)
	switch {
	case errors.As(err, &badShare):
		return "shared resume not found"
	case errors.As(err, &renderErr):
		switch renderErr.Format {
		case rendering.FormatPDF:
			return "Failed to generate PDF"
		case rendering.FormatDOCX:
			return "Failed to generate DOCX"
		default:
			return "Failed to render resume"
		}
	case errors.As(err, &tmplErr):
		return "Failed to render resume"
	case errors.As(err, &apiErr):
		return apiErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// validationDetails flattens schema and struct validation failures.
func validationDetails(err error) []schemas.FieldError {
	var (
		invalid   *ErrValidation
		schemaErr *schemas.ValidationError
		fieldErrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &invalid):
		return invalid.Details
	case errors.As(err, &schemaErr):
		return schemaErr.Errors
	case errors.As(err, &fieldErrs):
		out := make([]schemas.FieldError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			out = append(out, schemas.FieldError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed '%s' validation", fe.Tag()),
			})
		}
		return out
	}
	return nil
}

// ErrSessionNotFound indicates an unknown or expired live-preview session.
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("preview session not found: %s", e.ID)
}
