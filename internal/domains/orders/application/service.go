package application

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	"github.com/Apurer/order-board/internal/domains/orders/selection"
)

// Service is the order board: it owns the current criteria and selection and
// is the only place a status change reaches the repository. Calls are
// handled one at a time.
type Service struct {
	mu        sync.Mutex
	repo      ports.Repository
	engine    *query.Engine
	workflow  *selection.Workflow
	committer ports.StatusCommitter
	criteria  query.Criteria
}

type Option func(*Service)

// WithEngine replaces the default query engine.
func WithEngine(engine *query.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithWorkflow replaces the default selection workflow.
func WithWorkflow(workflow *selection.Workflow) Option {
	return func(s *Service) {
		if workflow != nil {
			s.workflow = workflow
		}
	}
}

// WithStatusCommitter routes commits through committer instead of writing to
// the repository directly.
func WithStatusCommitter(committer ports.StatusCommitter) Option {
	return func(s *Service) {
		if committer != nil {
			s.committer = committer
		}
	}
}

// NewService wires the board with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		engine:   query.NewEngine(),
		workflow: selection.NewWorkflow(),
		criteria: query.DefaultCriteria(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.committer == nil {
		s.committer = NewInlineCommitter(repo)
	}
	return s
}

// ListOrders projects the collection through criteria without touching board state.
func (s *Service) ListOrders(ctx context.Context, criteria query.Criteria) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return s.engine.VisibleRows(orders, criteria), nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, mapError(err)
	}
	return order, nil
}

// Board returns the current criteria, selection and visible rows.
func (s *Service) Board(ctx context.Context) (ports.BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.List(ctx)
	if err != nil {
		return ports.BoardView{}, mapError(err)
	}
	view := ports.BoardView{
		Criteria:  s.criteria,
		Selection: s.workflow.State(),
		Rows:      s.engine.VisibleRows(orders, s.criteria),
	}
	if view.Selection.HasSelection() {
		for i := range orders {
			if orders[i].ID == view.Selection.SelectedOrderID {
				selected := orders[i]
				view.SelectedOrder = &selected
				break
			}
		}
		if view.SelectedOrder == nil {
			// The record went away underneath an open modal.
			s.workflow.Cancel()
			view.Selection = s.workflow.State()
		}
	}
	return view, nil
}

// SetCriteria replaces the board's search, filter and sort criteria.
func (s *Service) SetCriteria(_ context.Context, criteria query.Criteria) (query.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = criteria
	return s.criteria, nil
}

// ToggleSort applies a column-header click to the board criteria.
func (s *Service) ToggleSort(_ context.Context, column query.SortKey) (query.Criteria, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = query.ToggleSort(s.criteria, column)
	return s.criteria, nil
}

// OpenDetails opens the read-only details modal for the order with id.
func (s *Service) OpenDetails(ctx context.Context, id string) (selection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.workflow.State(), mapError(err)
	}
	s.workflow.OpenDetails(order)
	return s.workflow.State(), nil
}

// OpenStatusChange opens the status modal for the order with id.
func (s *Service) OpenStatusChange(ctx context.Context, id string) (selection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.workflow.State(), mapError(err)
	}
	s.workflow.OpenStatusChange(order)
	return s.workflow.State(), nil
}

// UpdatePending stages a status for the next commit.
func (s *Service) UpdatePending(ctx context.Context, raw string) (selection.State, error) {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return s.State(), mapError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.workflow.UpdatePending(ctx, s.resolver(), status); err != nil {
		return s.workflow.State(), mapError(err)
	}
	return s.workflow.State(), nil
}

// Commit writes the staged status of the selected order and closes the modal.
func (s *Service) Commit(ctx context.Context) (ports.CommitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	change, outcome, err := s.workflow.Commit(ctx, s.resolver())
	if err != nil {
		return ports.CommitResult{Outcome: outcome, Selection: s.workflow.State()}, mapError(err)
	}
	result := ports.CommitResult{Outcome: outcome, Change: change, Selection: s.workflow.State()}
	if change == nil {
		return result, nil
	}
	stored := change.Order
	if change.Changed() {
		stored, err = s.committer.CommitStatus(ctx, *change)
		if err != nil {
			return result, mapError(err)
		}
	}
	result.Order = &stored
	return result, nil
}

// Cancel closes any open modal without writing anything.
func (s *Service) Cancel(_ context.Context) (selection.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workflow.Cancel()
	return s.workflow.State(), nil
}

// State returns the current selection.
func (s *Service) State() selection.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workflow.State()
}

// Criteria returns the current board criteria.
func (s *Service) Criteria() query.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *Service) resolver() selection.Resolver {
	return selection.ResolverFunc(func(ctx context.Context, id string) (domain.Order, bool, error) {
		order, err := s.repo.GetByID(ctx, id)
		if errors.Is(err, ports.ErrNotFound) {
			return domain.Order{}, false, nil
		}
		if err != nil {
			return domain.Order{}, false, err
		}
		return order, true, nil
	})
}

var _ ports.Service = (*Service)(nil)
