// Package errors renders RFC 7807 Problem Details for the board API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeBadRequest = "/problems/bad-request"
	TypeInternal   = "/problems/internal-error"
)

var (
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFoundProblem reports a missing resource by type and identifier.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
