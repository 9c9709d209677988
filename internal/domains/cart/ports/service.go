package ports

import (
	"context"
	"errors"

	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
)

// ErrSessionNotFound is returned for unknown or expired cart sessions.
var ErrSessionNotFound = errors.New("cart session not found")

// Service exposes the cart session use cases to adapters.
type Service interface {
	OpenSession(ctx context.Context) (carttypes.SessionView, error)
	CloseSession(ctx context.Context, ref carttypes.SessionRef) error
	View(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)

	AddToCart(ctx context.Context, input carttypes.AddItemInput) (carttypes.SessionView, error)
	UpdateQty(ctx context.Context, input carttypes.UpdateQtyInput) (carttypes.SessionView, error)
	RemoveFromCart(ctx context.Context, ref carttypes.ItemRef) (carttypes.SessionView, error)
	ClearCart(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)

	EnterView(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)
	LeaveView(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)
	WatchListing(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)
	UnwatchListing(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)

	SubmitCheckout(ctx context.Context, ref carttypes.SessionRef) (carttypes.SessionView, error)
}
