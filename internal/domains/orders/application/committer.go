package application

import (
	"context"
	"errors"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
)

// InlineCommitter applies status changes straight to the repository.
type InlineCommitter struct {
	repo ports.Repository
}

func NewInlineCommitter(repo ports.Repository) *InlineCommitter {
	return &InlineCommitter{repo: repo}
}

// CommitStatus re-reads the order so only status and last-updated move, then saves it.
func (c *InlineCommitter) CommitStatus(ctx context.Context, change domain.StatusChanged) (domain.Order, error) {
	if c == nil || c.repo == nil {
		return domain.Order{}, errors.New("inline status committer not configured")
	}
	return ApplyStatusChange(ctx, c.repo, change)
}

// ApplyStatusChange loads the current record for change.OrderID, applies the
// new status and date to it and saves it.
func ApplyStatusChange(ctx context.Context, repo ports.Repository, change domain.StatusChanged) (domain.Order, error) {
	current, err := repo.GetByID(ctx, change.OrderID)
	if err != nil {
		return domain.Order{}, err
	}
	updated, err := current.WithStatus(change.ToStatus, change.LastUpdated)
	if err != nil {
		return domain.Order{}, err
	}
	return repo.Save(ctx, updated)
}

var _ ports.StatusCommitter = (*InlineCommitter)(nil)
