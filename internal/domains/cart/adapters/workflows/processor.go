package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/checkout"
)

// DefaultProcessingDelay is the simulated payment latency.
const DefaultProcessingDelay = 1500 * time.Millisecond

var (
	_ ports.CheckoutProcessor = (*TemporalCheckoutProcessor)(nil)
	_ ports.CheckoutProcessor = (*InlineCheckoutProcessor)(nil)
)

// TemporalCheckoutProcessor runs checkout processing as a Temporal workflow.
type TemporalCheckoutProcessor struct {
	client    client.Client
	taskQueue string
	delay     time.Duration
}

// NewTemporalCheckoutProcessor wires a Temporal client into the processor.
func NewTemporalCheckoutProcessor(c client.Client, delay time.Duration) *TemporalCheckoutProcessor {
	if delay < 0 {
		delay = DefaultProcessingDelay
	}
	return &TemporalCheckoutProcessor{client: c, taskQueue: checkoutworkflows.CheckoutProcessingTaskQueue, delay: delay}
}

// Process starts the workflow and waits for its receipt. A retried submission
// for the same session attempt attaches to the running workflow.
func (p *TemporalCheckoutProcessor) Process(ctx context.Context, req ports.ProcessRequest) (ports.Receipt, error) {
	if p == nil || p.client == nil {
		return ports.Receipt{}, errors.New("temporal checkout processor not configured")
	}
	workflowID := fmt.Sprintf("checkout-%s-%d", req.SessionID, req.Attempt)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: p.taskQueue,
	}
	run, err := p.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutProcessingWorkflowName,
		checkoutworkflows.CheckoutProcessingWorkflowInput{Request: req, Delay: p.delay, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return ports.Receipt{}, err
		}
		run = p.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var receipt ports.Receipt
	if err := run.Get(ctx, &receipt); err != nil {
		return ports.Receipt{}, err
	}
	return receipt, nil
}

// InlineCheckoutProcessor waits the delay in process, used when Temporal is unavailable.
type InlineCheckoutProcessor struct {
	delay        time.Duration
	newReference func() string
	now          func() time.Time
}

// NewInlineCheckoutProcessor builds a timer-based processor.
func NewInlineCheckoutProcessor(delay time.Duration) *InlineCheckoutProcessor {
	if delay < 0 {
		delay = DefaultProcessingDelay
	}
	return &InlineCheckoutProcessor{
		delay:        delay,
		newReference: func() string { return "chk-" + uuid.NewString() },
		now:          time.Now,
	}
}

// Process blocks for the configured delay or until ctx is cancelled.
func (p *InlineCheckoutProcessor) Process(ctx context.Context, _ ports.ProcessRequest) (ports.Receipt, error) {
	if p == nil {
		return ports.Receipt{}, errors.New("inline checkout processor not configured")
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ports.Receipt{}, ctx.Err()
	case <-timer.C:
	}
	return ports.Receipt{Reference: p.newReference(), ProcessedAt: p.now().UTC()}, nil
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
