package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/checkout"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(CheckoutProcessingWorkflow, workflow.RegisterOptions{Name: CheckoutProcessingWorkflowName})
	return env
}

func TestCheckoutProcessingWorkflow_IssuesReceiptAfterDelay(t *testing.T) {
	env := newEnv(t)
	acts := checkoutactivities.NewActivities()
	env.RegisterActivityWithOptions(acts.IssueReceipt, activity.RegisterOptions{Name: checkoutactivities.IssueReceiptActivityName})

	start := env.Now()
	env.ExecuteWorkflow(CheckoutProcessingWorkflowName, CheckoutProcessingWorkflowInput{
		Request: cartports.ProcessRequest{SessionID: "s-1", Attempt: 1, Total: 42, Lines: 2},
		Delay:   1500 * time.Millisecond,
	})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var receipt cartports.Receipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.Contains(t, receipt.Reference, "chk-")
	require.GreaterOrEqual(t, env.Now().Sub(start), 1500*time.Millisecond)
}

func TestCheckoutProcessingWorkflow_PropagatesActivityFailure(t *testing.T) {
	env := newEnv(t)
	env.RegisterActivityWithOptions(
		func(context.Context, cartports.ProcessRequest) (cartports.Receipt, error) {
			return cartports.Receipt{}, errors.New("ledger offline")
		},
		activity.RegisterOptions{Name: checkoutactivities.IssueReceiptActivityName},
	)

	env.ExecuteWorkflow(CheckoutProcessingWorkflowName, CheckoutProcessingWorkflowInput{
		Request: cartports.ProcessRequest{SessionID: "s-2", Attempt: 1},
	})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}
