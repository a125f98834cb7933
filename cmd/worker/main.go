package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/order-board/internal/app/api"
	platformobservability "github.com/Apurer/order-board/internal/platform/observability"
	orderactivities "github.com/Apurer/order-board/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/order-board/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-board-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
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

	repo, cleanupRepo, err := api.OpenRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open order repository", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupRepo()
	if !api.SharedRepository(repo) {
		logger.Error("worker requires a shared order repository, set POSTGRES_DSN")
		cleanupRepo()
		os.Exit(1)
	}
	orderActivities := orderactivities.NewActivities(repo)

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.StatusCommitTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.StatusCommitWorkflow, workflow.RegisterOptions{Name: orderworkflows.StatusCommitWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PersistStatusChange, activity.RegisterOptions{Name: orderactivities.PersistStatusChangeActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.StatusCommitTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
