package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/order-board/internal/platform/temporal/activities/orders"
)

// RunStatusCommitSequence executes the activities needed to persist a committed status change.
func RunStatusCommitSequence(ctx workflow.Context, change domain.StatusChanged) (domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("status commit sequence started", "orderId", change.OrderID)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.ErrTypeOrderNotFound,
				orderactivities.ErrTypeInvalidChange,
			},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), orderactivities.PersistStatusChangeActivityName, change).Get(ctx, &order)
	if err != nil {
		logger.Error("status commit sequence failed", "orderId", change.OrderID, "error", err)
		return domain.Order{}, err
	}
	logger.Info("status commit sequence persisted", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}
