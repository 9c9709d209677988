package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for problem responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates an application error into a problem. It reports false
// when the error is not one it knows.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes problem responses and aborts the gin chain.
type Responder struct {
	// BaseURI is prepended to relative problem type URIs.
	BaseURI string
	mappers []ErrorMapper
}

// NewResponder creates a responder that consults mappers in order.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// AddMapper appends a mapper to the chain.
func (r *Responder) AddMapper(mapper ErrorMapper) {
	if mapper != nil {
		r.mappers = append(r.mappers, mapper)
	}
}

// Respond sends the problem with its status and content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err through the chain. Unknown errors become a 500 whose
// detail does not leak the underlying message.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	_ = c.Error(err)
	r.Respond(c, ErrInternal.WithDetail("unexpected error"))
}

// BadRequest sends a 400 problem response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// Forbidden sends a 403 problem response.
func (r *Responder) Forbidden(c *gin.Context, detail string) {
	r.Respond(c, ErrForbidden.WithDetail(detail))
}
