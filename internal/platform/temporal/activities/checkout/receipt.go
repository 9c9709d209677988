package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

const (
	// IssueReceiptActivityName stamps a completed checkout with a reference.
	IssueReceiptActivityName = "cart.activities.IssueReceipt"
)

// Activities groups the checkout processing activities.
type Activities struct {
	newReference func() string
	now          func() time.Time
}

// NewActivities wires the receipt activity with uuid references and wall-clock time.
func NewActivities() *Activities {
	return &Activities{
		newReference: func() string { return "chk-" + uuid.NewString() },
		now:          time.Now,
	}
}

// IssueReceipt returns the receipt for a processed checkout.
func (a *Activities) IssueReceipt(ctx context.Context, req cartports.ProcessRequest) (cartports.Receipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.newReference == nil {
		logger.Error("receipt activity not initialized", "sessionId", req.SessionID)
		return cartports.Receipt{}, errors.New("receipt activity not initialized")
	}
	receipt := cartports.Receipt{Reference: a.newReference(), ProcessedAt: a.now().UTC()}
	logger.Info("IssueReceipt activity completed",
		"sessionId", req.SessionID,
		"attempt", req.Attempt,
		"reference", receipt.Reference)
	return receipt, nil
}
