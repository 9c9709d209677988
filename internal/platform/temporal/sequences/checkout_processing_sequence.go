package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/checkout"
)

// RunCheckoutProcessingSequence waits out the simulated payment latency and then issues a receipt.
func RunCheckoutProcessingSequence(ctx workflow.Context, req cartports.ProcessRequest, delay time.Duration) (cartports.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout processing sequence started", "sessionId", req.SessionID, "attempt", req.Attempt)

	if delay > 0 {
		if err := workflow.Sleep(ctx, delay); err != nil {
			logger.Error("checkout processing sleep interrupted", "sessionId", req.SessionID, "error", err)
			return cartports.Receipt{}, err
		}
	}

	receiptOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}
	var receipt cartports.Receipt
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, receiptOptions), checkoutactivities.IssueReceiptActivityName, req).Get(ctx, &receipt)
	if err != nil {
		logger.Error("checkout processing sequence failed", "sessionId", req.SessionID, "error", err)
		return cartports.Receipt{}, err
	}
	logger.Info("checkout processing sequence settled", "sessionId", req.SessionID, "reference", receipt.Reference)
	return receipt, nil
}
