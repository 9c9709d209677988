// Package errors renders RFC 7807 problem details for the storefront API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem body.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries problem-specific members such as the names of
	// products that are short on stock.
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

// WithExtension returns a copy with an additional member. The receiver's map is not shared.
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
	TypeValidation  = "/problems/validation-error"
	TypeNotFound    = "/problems/not-found"
	TypeConflict    = "/problems/conflict"
	TypeOutOfStock  = "/problems/out-of-stock"
	TypeForbidden   = "/problems/forbidden"
	TypeRateLimited = "/problems/rate-limited"
	TypeUpstream    = "/problems/upstream-failure"
	TypeInternal    = "/problems/internal-error"
	TypeUnavailable = "/problems/service-unavailable"
	TypeBadRequest  = "/problems/bad-request"
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

	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// ErrOutOfStock is raised when a purchase or cart add exceeds stock.
	ErrOutOfStock = ProblemDetail{
		Type:   TypeOutOfStock,
		Title:  "Out Of Stock",
		Status: http.StatusConflict,
	}

	ErrForbidden = ProblemDetail{
		Type:   TypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
	}

	ErrTooManyRequests = ProblemDetail{
		Type:   TypeRateLimited,
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
	}

	// ErrBadGateway reports a failure in a downstream service such as the voice service.
	ErrBadGateway = ProblemDetail{
		Type:   TypeUpstream,
		Title:  "Bad Gateway",
		Status: http.StatusBadGateway,
	}

	ErrServiceUnavailable = ProblemDetail{
		Type:   TypeUnavailable,
		Title:  "Service Unavailable",
		Status: http.StatusServiceUnavailable,
	}

	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}

// NewInsufficientStockProblem lists the cart lines that exceed current stock.
func NewInsufficientStockProblem(detail string, names []string) ProblemDetail {
	if names == nil {
		names = []string{}
	}
	return ErrOutOfStock.WithDetail(detail).WithExtension("insufficient", names)
}
