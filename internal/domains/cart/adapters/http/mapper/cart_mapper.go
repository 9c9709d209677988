package mapper

import (
	"time"

	carttypes "github.com/Apurer/go-gin-storefront/internal/domains/cart/application/types"
)

// AddItem is the add-to-cart payload.
type AddItem struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty"`
}

// UpdateQty is the quantity override payload.
type UpdateQty struct {
	Qty *int `json:"qty" binding:"required"`
}

// LineItem is one cart line as rendered to clients.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Qty       int     `json:"qty"`
	Subtotal  float64 `json:"subtotal"`
	Stock     *int64  `json:"stock"`
}

// Reconciliation mirrors the stock check verdict.
type Reconciliation struct {
	InsufficientNames []string `json:"insufficient"`
	FetchInFlight     bool     `json:"checkingStock"`
	Blocked           bool     `json:"blocked"`
}

// Checkout mirrors the checkout machine status.
type Checkout struct {
	State             string   `json:"state"`
	Attempt           int      `json:"attempt"`
	Message           string   `json:"message,omitempty"`
	InsufficientNames []string `json:"insufficient,omitempty"`
	LastError         string   `json:"lastError,omitempty"`
	Receipt           string   `json:"receipt,omitempty"`
}

// Session is the full cart session payload.
type Session struct {
	SessionID      string         `json:"sessionId"`
	Items          []LineItem     `json:"items"`
	Total          float64        `json:"total"`
	Reconciliation Reconciliation `json:"reconciliation"`
	Checkout       Checkout       `json:"checkout"`
	ViewActive     bool           `json:"viewActive"`
	Watching       bool           `json:"watching"`
	SnapshotAt     *time.Time     `json:"snapshotAt,omitempty"`
}

// FromView maps the session read model.
func FromView(view carttypes.SessionView) Session {
	items := make([]LineItem, 0, len(view.Items))
	for _, line := range view.Items {
		items = append(items, LineItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Qty:       line.Qty,
			Subtotal:  line.Subtotal(),
			Stock:     line.Stock,
		})
	}
	var snapshotAt *time.Time
	if !view.SnapshotAt.IsZero() {
		at := view.SnapshotAt
		snapshotAt = &at
	}
	return Session{
		SessionID:      view.SessionID,
		Items:          items,
		Total:          view.Total,
		Reconciliation: FromReconciliation(view),
		Checkout: Checkout{
			State:             string(view.Checkout.State),
			Attempt:           view.Checkout.Attempt,
			Message:           view.Checkout.Message,
			InsufficientNames: view.Checkout.InsufficientNames,
			LastError:         view.Checkout.LastError,
			Receipt:           view.LastReceipt,
		},
		ViewActive: view.ViewActive,
		Watching:   view.Watching,
		SnapshotAt: snapshotAt,
	}
}

// FromReconciliation maps just the stock verdict.
func FromReconciliation(view carttypes.SessionView) Reconciliation {
	names := view.Reconciliation.InsufficientNames
	if names == nil {
		names = []string{}
	}
	return Reconciliation{
		InsufficientNames: names,
		FetchInFlight:     view.Reconciliation.FetchInFlight,
		Blocked:           view.Reconciliation.Blocked,
	}
}
