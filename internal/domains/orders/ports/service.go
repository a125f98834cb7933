package ports

import (
	"context"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	"github.com/Apurer/order-board/internal/domains/orders/selection"
)

// BoardView is everything the rendering layer needs for one paint.
type BoardView struct {
	Criteria  query.Criteria
	Selection selection.State
	// SelectedOrder is the record behind Selection, nil when nothing is selected.
	SelectedOrder *domain.Order
	Rows          []domain.Order
}

// CommitResult reports what a commit did.
type CommitResult struct {
	Outcome selection.Outcome
	// Change is set when the outcome is applied.
	Change *domain.StatusChanged
	// Order is the stored record after the commit, set when the outcome is applied.
	Order     *domain.Order
	Selection selection.State
}

// Service exposes the order board use cases to adapters.
type Service interface {
	ListOrders(ctx context.Context, criteria query.Criteria) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	Board(ctx context.Context) (BoardView, error)
	SetCriteria(ctx context.Context, criteria query.Criteria) (query.Criteria, error)
	ToggleSort(ctx context.Context, column query.SortKey) (query.Criteria, error)
	OpenDetails(ctx context.Context, id string) (selection.State, error)
	OpenStatusChange(ctx context.Context, id string) (selection.State, error)
	UpdatePending(ctx context.Context, status string) (selection.State, error)
	Commit(ctx context.Context) (CommitResult, error)
	Cancel(ctx context.Context) (selection.State, error)
}
