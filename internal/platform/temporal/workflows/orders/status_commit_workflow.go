package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/platform/temporal/sequences"
)

const (
	// StatusCommitWorkflowName is the public identifier for registering the workflow.
	StatusCommitWorkflowName = "orders.workflows.StatusCommit"
	// StatusCommitTaskQueue is the queue consumed by the worker processing order workflows.
	StatusCommitTaskQueue = "ORDER_STATUS_COMMIT"
)

// StatusCommitWorkflowInput carries one committed status change.
type StatusCommitWorkflowInput struct {
	Change  domain.StatusChanged
	TraceID string
}

// StatusCommitWorkflow durably writes a status change produced by the board.
func StatusCommitWorkflow(ctx workflow.Context, input StatusCommitWorkflowInput) (domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	orderID := input.Change.OrderID
	logger.Info("StatusCommitWorkflow started", withTraceID(input.TraceID, "orderId", orderID)...)
	order, err := sequences.RunStatusCommitSequence(ctx, input.Change)
	if err != nil {
		logger.Error("StatusCommitWorkflow failed", withTraceID(input.TraceID, "orderId", orderID, "error", err)...)
		return domain.Order{}, err
	}
	logger.Info("StatusCommitWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
