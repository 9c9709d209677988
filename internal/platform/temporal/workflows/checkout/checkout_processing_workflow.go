package checkout

import (
	"time"

	"go.temporal.io/sdk/workflow"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/temporal/sequences"
)

const (
	// CheckoutProcessingWorkflowName is the public identifier for registering the workflow.
	CheckoutProcessingWorkflowName = "cart.workflows.CheckoutProcessing"
	// CheckoutProcessingTaskQueue is the queue consumed by the worker processing checkouts.
	CheckoutProcessingTaskQueue = "CHECKOUT_PROCESSING"
)

// CheckoutProcessingWorkflowInput carries one processing run.
type CheckoutProcessingWorkflowInput struct {
	Request cartports.ProcessRequest
	Delay   time.Duration
	TraceID string
}

// CheckoutProcessingWorkflow durably sleeps the simulated payment latency and returns a receipt.
func CheckoutProcessingWorkflow(ctx workflow.Context, input CheckoutProcessingWorkflowInput) (cartports.Receipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("CheckoutProcessingWorkflow started", withTraceID(input.TraceID, "sessionId", input.Request.SessionID, "attempt", input.Request.Attempt)...)
	receipt, err := sequences.RunCheckoutProcessingSequence(ctx, input.Request, input.Delay)
	if err != nil {
		logger.Error("CheckoutProcessingWorkflow failed", withTraceID(input.TraceID, "sessionId", input.Request.SessionID, "error", err)...)
		return cartports.Receipt{}, err
	}
	logger.Info("CheckoutProcessingWorkflow completed", withTraceID(input.TraceID, "reference", receipt.Reference)...)
	return receipt, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
