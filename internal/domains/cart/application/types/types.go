package types

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// SessionRef addresses a cart session.
type SessionRef struct {
	SessionID string
}

// ItemRef addresses one line in a session's cart.
type ItemRef struct {
	SessionID string
	ProductID string
}

// AddItemInput adds a product to a session's cart.
type AddItemInput struct {
	SessionID string
	ProductID string
	Qty       int
}

// UpdateQtyInput overrides the quantity of one line.
type UpdateQtyInput struct {
	SessionID string
	ProductID string
	Qty       int
}

// LineView is a cart line plus the stock known for it. Stock is nil when the
// last snapshot did not mention the product.
type LineView struct {
	domain.LineItem
	Stock *int64
}

// SessionView is the read model for one cart session.
type SessionView struct {
	SessionID      string
	Items          []LineView
	Total          float64
	Reconciliation domain.Reconciliation
	Checkout       domain.Status
	LastReceipt    string
	ViewActive     bool
	Watching       bool
	SnapshotAt     time.Time
}
