package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/order-board/internal/domains/orders/application"
	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/order-board/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/order-board/internal/platform/temporal/workflows/orders"
)

var _ ports.StatusCommitter = (*TemporalStatusCommitter)(nil)

// WorkflowStarter is the slice of client.Client the committer needs.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalStatusCommitter writes status changes through a Temporal workflow.
type TemporalStatusCommitter struct {
	client    WorkflowStarter
	taskQueue string
}

// NewTemporalStatusCommitter wires a Temporal client into the committer.
func NewTemporalStatusCommitter(c WorkflowStarter) *TemporalStatusCommitter {
	return &TemporalStatusCommitter{client: c, taskQueue: orderworkflows.StatusCommitTaskQueue}
}

// CommitStatus starts the status commit workflow and waits for the stored order.
func (o *TemporalStatusCommitter) CommitStatus(ctx context.Context, change domain.StatusChanged) (domain.Order, error) {
	if o == nil || o.client == nil {
		return domain.Order{}, errors.New("temporal status committer not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildStatusCommitWorkflowID(change, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.StatusCommitWorkflowName,
		orderworkflows.StatusCommitWorkflowInput{Change: change, TraceID: traceComponent},
	)
	if err != nil {
		return domain.Order{}, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return domain.Order{}, unwrapWorkflowError(err)
	}
	return order, nil
}

// unwrapWorkflowError restores the sentinel errors the activity classified.
func unwrapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeOrderNotFound:
		return fmt.Errorf("%w: %w", ports.ErrNotFound, err)
	case orderactivities.ErrTypeInvalidChange:
		return fmt.Errorf("%w: %w", application.ErrInvalidInput, err)
	default:
		return err
	}
}

func buildStatusCommitWorkflowID(change domain.StatusChanged, traceComponent string) string {
	return fmt.Sprintf("order-status-commit-%s-%s", change.OrderID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
