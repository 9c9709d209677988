package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-storefront/internal/platform/temporal"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/platform/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/platform/temporal/workflows/checkout"
)

func main() {
	_ = godotenv.Load()
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.ParseLevel(os.Getenv("LOG_LEVEL")))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	namespace := envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: namespace,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	activities := checkoutactivities.NewActivities()
	w := worker.New(temporalClient, checkoutworkflows.CheckoutProcessingTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(checkoutworkflows.CheckoutProcessingWorkflow, workflow.RegisterOptions{Name: checkoutworkflows.CheckoutProcessingWorkflowName})
	w.RegisterActivityWithOptions(activities.IssueReceipt, activity.RegisterOptions{Name: checkoutactivities.IssueReceiptActivityName})

	logger.Info("worker listening", slog.String("taskQueue", checkoutworkflows.CheckoutProcessingTaskQueue), slog.String("namespace", namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
