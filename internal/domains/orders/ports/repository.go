package ports

import (
	"context"
	"errors"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository owns the order collection. List returns orders in a stable
// collection order, which is the order the board shows before sorting.
type Repository interface {
	Save(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id string) (domain.Order, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Order, error)
}
