package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	"github.com/Apurer/order-board/internal/domains/orders/selection"
)

const tracerName = "github.com/Apurer/order-board/internal/domains/orders/adapters/observability/service"

// Service decorates the board service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core board service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListOrders(ctx context.Context, criteria query.Criteria) ([]domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.ListOrders", trace.WithAttributes(criteriaAttributes(criteria)...))
	defer span.End()

	rows, err := s.inner.ListOrders(ctx, criteria)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.visible", len(rows)))
	return rows, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return order, nil
}

func (s *Service) Board(ctx context.Context) (ports.BoardView, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.Board")
	defer span.End()

	view, err := s.inner.Board(ctx)
	if err != nil {
		return ports.BoardView{}, s.handleError(ctx, span, err, "failed to render board")
	}
	span.SetAttributes(criteriaAttributes(view.Criteria)...)
	span.SetAttributes(
		attribute.Int("orders.visible", len(view.Rows)),
		attribute.String("selection.modal", string(view.Selection.ActiveModal)),
	)
	return view, nil
}

func (s *Service) SetCriteria(ctx context.Context, criteria query.Criteria) (query.Criteria, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.SetCriteria", trace.WithAttributes(criteriaAttributes(criteria)...))
	defer span.End()

	result, err := s.inner.SetCriteria(ctx, criteria)
	if err != nil {
		return query.Criteria{}, s.handleError(ctx, span, err, "failed to update criteria")
	}
	return result, nil
}

func (s *Service) ToggleSort(ctx context.Context, column query.SortKey) (query.Criteria, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.ToggleSort", trace.WithAttributes(attribute.String("sort.column", string(column))))
	defer span.End()

	result, err := s.inner.ToggleSort(ctx, column)
	if err != nil {
		return query.Criteria{}, s.handleError(ctx, span, err, "failed to toggle sort", slog.String("sort.column", string(column)))
	}
	span.SetAttributes(attribute.String("sort.direction", string(result.Direction)))
	return result, nil
}

func (s *Service) OpenDetails(ctx context.Context, id string) (selection.State, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.OpenDetails", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	state, err := s.inner.OpenDetails(ctx, id)
	if err != nil {
		return state, s.handleError(ctx, span, err, "failed to open details", slog.String("order.id", id))
	}
	s.metrics.recordSelection(ctx, "open_details", selection.OutcomeApplied)
	s.logInfo(ctx, "details opened", slog.String("order.id", id))
	return state, nil
}

func (s *Service) OpenStatusChange(ctx context.Context, id string) (selection.State, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.OpenStatusChange", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	state, err := s.inner.OpenStatusChange(ctx, id)
	if err != nil {
		return state, s.handleError(ctx, span, err, "failed to open status change", slog.String("order.id", id))
	}
	s.metrics.recordSelection(ctx, "open_status_change", selection.OutcomeApplied)
	s.logInfo(ctx, "status change opened", slog.String("order.id", id), slog.String("status", string(state.PendingStatus)))
	return state, nil
}

func (s *Service) UpdatePending(ctx context.Context, status string) (selection.State, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.UpdatePending", trace.WithAttributes(attribute.String("order.pending_status", status)))
	defer span.End()

	state, err := s.inner.UpdatePending(ctx, status)
	if err != nil {
		return state, s.handleError(ctx, span, err, "failed to stage status", slog.String("status", status))
	}
	return state, nil
}

func (s *Service) Commit(ctx context.Context) (ports.CommitResult, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.Commit")
	defer span.End()

	result, err := s.inner.Commit(ctx)
	if err != nil {
		return result, s.handleError(ctx, span, err, "failed to commit status change")
	}
	span.SetAttributes(attribute.String("selection.outcome", string(result.Outcome)))
	s.metrics.recordSelection(ctx, "commit", result.Outcome)
	if result.Change == nil {
		s.logInfo(ctx, "commit skipped", slog.String("outcome", string(result.Outcome)))
		return result, nil
	}
	span.SetAttributes(
		attribute.String("order.id", result.Change.OrderID),
		attribute.String("order.status.from", string(result.Change.FromStatus)),
		attribute.String("order.status.to", string(result.Change.ToStatus)),
	)
	if result.Change.Changed() {
		s.metrics.recordCommit(ctx, result.Change.ToStatus)
	}
	s.logInfo(ctx, "status committed",
		slog.String("order.id", result.Change.OrderID),
		slog.String("from", string(result.Change.FromStatus)),
		slog.String("to", string(result.Change.ToStatus)),
		slog.Bool("changed", result.Change.Changed()),
	)
	return result, nil
}

func (s *Service) Cancel(ctx context.Context) (selection.State, error) {
	ctx, span := s.tracer.Start(ctx, "OrderBoard.Cancel")
	defer span.End()

	state, err := s.inner.Cancel(ctx)
	if err != nil {
		return state, s.handleError(ctx, span, err, "failed to cancel selection")
	}
	s.metrics.recordSelection(ctx, "cancel", selection.OutcomeApplied)
	return state, nil
}

func criteriaAttributes(c query.Criteria) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool("criteria.search", c.SearchTerm != ""),
		attribute.String("criteria.status", string(c.Status)),
		attribute.String("criteria.sort", string(c.SortKey)),
		attribute.String("criteria.direction", string(c.Direction)),
	}
	if c.Date != nil {
		attrs = append(attrs, attribute.String("criteria.date", c.Date.String()))
	}
	return attrs
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	statusCommits   metric.Int64Counter
	selectionEvents metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	statusCommits, _ := m.Int64Counter("orders.board.status_commits", metric.WithDescription("Number of committed order status changes"))
	selectionEvents, _ := m.Int64Counter("orders.board.selection_events", metric.WithDescription("Number of selection workflow events"))
	return serviceMetrics{statusCommits: statusCommits, selectionEvents: selectionEvents}
}

func (m serviceMetrics) recordCommit(ctx context.Context, status domain.Status) {
	if m.statusCommits != nil {
		m.statusCommits.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordSelection(ctx context.Context, event string, outcome selection.Outcome) {
	if m.selectionEvents != nil {
		m.selectionEvents.Add(ctx, 1, metric.WithAttributes(
			attribute.String("selection.event", event),
			attribute.String("selection.outcome", string(outcome)),
		))
	}
}

var _ ports.Service = (*Service)(nil)
