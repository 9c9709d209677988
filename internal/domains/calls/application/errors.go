package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/calls/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid call input")
	// ErrRateLimited is returned when call triggers arrive faster than allowed.
	ErrRateLimited = errors.New("too many call requests")
	// ErrDialFailed wraps failures reported by the voice service.
	ErrDialFailed = errors.New("failed to trigger call")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPhone) ||
		errors.Is(err, domain.ErrMissingCallSID) ||
		errors.Is(err, domain.ErrInvalidRole) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
