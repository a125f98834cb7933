package ports

import (
	"context"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// StatusCommitter writes a committed status change to the store and returns
// the stored record.
type StatusCommitter interface {
	CommitStatus(ctx context.Context, change domain.StatusChanged) (domain.Order, error)
}
