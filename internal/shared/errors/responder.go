package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a domain or application error into a problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problems, trying its mappers before falling back to 500.
type Responder struct {
	mappers []ErrorMapper
}

func NewResponder(mappers ...ErrorMapper) *Responder {
	return &Responder{mappers: mappers}
}

// Respond writes problem with the problem+json content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err and writes the resulting problem.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			r.Respond(c, mapped)
			return
		}
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}
