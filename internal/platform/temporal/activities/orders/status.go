package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/order-board/internal/domains/orders/application"
	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
)

const (
	// PersistStatusChangeActivityName writes a committed status change to the order store.
	PersistStatusChangeActivityName = "orders.activities.PersistStatusChange"

	// ErrTypeOrderNotFound marks a non-retryable failure for an order that no longer exists.
	ErrTypeOrderNotFound = "OrderNotFound"
	// ErrTypeInvalidChange marks a non-retryable failure for a change the domain rejects.
	ErrTypeInvalidChange = "InvalidStatusChange"
)

// Activities groups activities that operate on the order store.
type Activities struct {
	repo ports.Repository
}

// NewActivities wires the order repository into the Temporal activities bundle.
func NewActivities(repo ports.Repository) *Activities {
	return &Activities{repo: repo}
}

// PersistStatusChange applies change to the stored order and returns the saved record.
func (a *Activities) PersistStatusChange(ctx context.Context, change domain.StatusChanged) (domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("status change activity not initialized", "orderId", change.OrderID)
		return domain.Order{}, errors.New("status change activity not initialized")
	}
	logger.Info("PersistStatusChange activity started", "orderId", change.OrderID, "toStatus", string(change.ToStatus))
	order, err := application.ApplyStatusChange(ctx, a.repo, change)
	if err != nil {
		logger.Error("PersistStatusChange activity failed", "orderId", change.OrderID, "error", err)
		return domain.Order{}, classify(err)
	}
	logger.Info("PersistStatusChange activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}

// classify stops retries for failures another attempt cannot fix.
func classify(err error) error {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeOrderNotFound, err)
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidDate):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidChange, err)
	default:
		return err
	}
}
