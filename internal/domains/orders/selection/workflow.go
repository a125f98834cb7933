package selection

import (
	"context"
	"time"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// Resolver looks an order up in the current collection by id.
type Resolver interface {
	Resolve(ctx context.Context, id string) (domain.Order, bool, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id string) (domain.Order, bool, error)

func (f ResolverFunc) Resolve(ctx context.Context, id string) (domain.Order, bool, error) {
	return f(ctx, id)
}

// Workflow is the Details / StatusChange state machine. It never writes to
// the collection; Commit hands back the mutation for the caller to apply.
// A Workflow is not safe for concurrent use.
type Workflow struct {
	state  State
	policy LastUpdatedPolicy
	now    func() time.Time
}

type Option func(*Workflow)

func WithLastUpdatedPolicy(policy LastUpdatedPolicy) Option {
	return func(w *Workflow) {
		w.policy = policy
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

func NewWorkflow(opts ...Option) *Workflow {
	w := &Workflow{state: idle(), policy: PreserveLastUpdated, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// State returns a snapshot of the selection.
func (w *Workflow) State() State {
	return w.state
}

// OpenDetails shows the read-only details modal for order. An order without
// an id leaves the state unchanged.
func (w *Workflow) OpenDetails(order domain.Order) {
	if order.ID == "" {
		return
	}
	w.state = State{SelectedOrderID: order.ID, ActiveModal: ModalDetails}
}

// OpenStatusChange opens the status modal with the order's current status staged.
func (w *Workflow) OpenStatusChange(order domain.Order) {
	if order.ID == "" {
		return
	}
	w.state = State{SelectedOrderID: order.ID, ActiveModal: ModalStatusChange, PendingStatus: order.Status}
}

// UpdatePending stages status for the next commit.
func (w *Workflow) UpdatePending(ctx context.Context, r Resolver, status domain.Status) (Outcome, error) {
	if !CanUpdatePending(w.state).Allowed || !status.Valid() {
		return OutcomeIgnored, nil
	}
	_, ok, err := r.Resolve(ctx, w.state.SelectedOrderID)
	if err != nil {
		return OutcomeIgnored, err
	}
	if !ok {
		w.Cancel()
		return OutcomeStale, nil
	}
	w.state.PendingStatus = status
	return OutcomeApplied, nil
}

// Commit re-resolves the selected order by id and returns the StatusChanged
// event for the staged status, then closes the modal. The event is nil unless
// the outcome is OutcomeApplied.
func (w *Workflow) Commit(ctx context.Context, r Resolver) (*domain.StatusChanged, Outcome, error) {
	if !CanCommit(w.state).Allowed {
		return nil, OutcomeIgnored, nil
	}
	current, ok, err := r.Resolve(ctx, w.state.SelectedOrderID)
	if err != nil {
		return nil, OutcomeIgnored, err
	}
	if !ok {
		w.Cancel()
		return nil, OutcomeStale, nil
	}

	now := w.now()
	lastUpdated := current.LastUpdated
	if w.policy == TouchLastUpdated && w.state.PendingStatus != current.Status {
		lastUpdated = domain.DateOf(now)
	}
	updated, err := current.WithStatus(w.state.PendingStatus, lastUpdated)
	if err != nil {
		return nil, OutcomeIgnored, err
	}
	w.Cancel()
	return &domain.StatusChanged{
		OrderID:             current.ID,
		FromStatus:          current.Status,
		ToStatus:            updated.Status,
		PreviousLastUpdated: current.LastUpdated,
		LastUpdated:         updated.LastUpdated,
		Order:               updated,
		Timestamp:           now,
	}, OutcomeApplied, nil
}

// Cancel closes any modal and discards the staged status.
func (w *Workflow) Cancel() {
	w.state = idle()
}

// Close is Cancel under the name the details modal uses.
func (w *Workflow) Close() {
	w.Cancel()
}
