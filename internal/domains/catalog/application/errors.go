package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrMissingFields mirrors the admin form rule that every field must be supplied.
	ErrMissingFields = errors.New("all fields are required")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyDescription) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidPurchaseQty) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
