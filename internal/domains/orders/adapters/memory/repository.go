package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store. List returns orders in the order
// they were first saved; saving an existing id keeps its position.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	order  []string
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]domain.Order{}}
}

// NewRepositoryWith returns a repository seeded with orders in slice order.
func NewRepositoryWith(orders []domain.Order) (*Repository, error) {
	r := NewRepository()
	for _, order := range orders {
		if _, err := r.Save(context.Background(), order); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Repository) Save(_ context.Context, order domain.Order) (domain.Order, error) {
	if err := order.Validate(); err != nil {
		return domain.Order{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[order.ID]; !ok {
		r.order = append(r.order, order.ID)
	}
	r.orders[order.ID] = order
	return order, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, ports.ErrNotFound
	}
	return order, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })
	return nil
}

func (r *Repository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Order, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.orders[id])
	}
	return list, nil
}
