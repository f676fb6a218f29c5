package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/resumefile"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/theme"
)

// ErrStoreUnavailable is returned by history endpoints when no database is configured
var ErrStoreUnavailable = errors.New("render history is not configured")

// ErrRenderNotFound indicates a render or artifact was not found
type ErrRenderNotFound struct {
	RenderID uuid.UUID
	Artifact string
}

func (e *ErrRenderNotFound) Error() string {
	if e.Artifact != "" {
		return fmt.Sprintf("artifact %s not found for render %s", e.Artifact, e.RenderID)
	}
	return fmt.Sprintf("render not found: %s", e.RenderID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		maxBytes  *http.MaxBytesError
		notFound  *ErrRenderNotFound
		reqErr    *ErrValidation
		schemaErr *schemas.ValidationError
		loadErr   *resumefile.LoadError
		docErr    *parsing.DocumentError
		themeErr  *theme.ValidationError
	)

	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, rendering.ErrEngineNotFound):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &reqErr), errors.As(err, &schemaErr), errors.As(err, &loadErr), errors.As(err, &themeErr):
		return http.StatusBadRequest
	case errors.As(err, &docErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
