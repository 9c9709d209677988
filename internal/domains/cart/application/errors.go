package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

var (
	// ErrInvalidInput signals a malformed cart request.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrOutOfStock is returned when adding a product with no available units.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrCheckoutRejected wraps the checkout outcomes that leave the cart untouched.
	ErrCheckoutRejected = errors.New("checkout rejected")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrCheckoutBlocked) ||
		errors.Is(err, domain.ErrCheckoutInProgress) {
		return fmt.Errorf("%w: %w", ErrCheckoutRejected, err)
	}
	return err
}
