package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	callsapp "github.com/Apurer/go-gin-storefront/internal/domains/calls/application"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

var responder = apierrors.NewResponder("",
	catalogProblem,
	cartProblem,
	callsProblem,
)

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

func catalogProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound), errors.Is(err, cartports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithDetail("Product not found"), true
	case errors.Is(err, catalogports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail("Idempotency-Key was already used for a different product"), true
	case errors.Is(err, catalogapp.ErrMissingFields):
		return apierrors.ErrValidation.WithDetail("All fields are required"), true
	case errors.Is(err, catalogdomain.ErrInsufficientStock):
		return apierrors.ErrOutOfStock.WithDetail("Not enough stock"), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func cartProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartports.ErrSessionNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrOutOfStock):
		return apierrors.ErrOutOfStock.WithDetail(err.Error()), true
	case errors.Is(err, cartdomain.ErrEmptyCart):
		return apierrors.ErrConflict.WithDetail("Your cart is empty"), true
	case errors.Is(err, cartdomain.ErrCheckoutInProgress):
		return apierrors.ErrConflict.WithDetail(cartdomain.MessageProcessing), true
	case errors.Is(err, cartapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func callsProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, callsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, callsapp.ErrRateLimited):
		return apierrors.ErrTooManyRequests.WithDetail(err.Error()), true
	case errors.Is(err, callsapp.ErrDialFailed):
		return apierrors.ErrBadGateway.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
