package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/query"
)

type fakeStore map[string]domain.Order

func (f fakeStore) Resolve(_ context.Context, id string) (domain.Order, bool, error) {
	o, ok := f[id]
	return o, ok, nil
}

func seed(t *testing.T) fakeStore {
	t.Helper()
	nike, err := domain.NewOrder("1", "Nike Air Max", "Shoes", decimal.RequireFromString("199.99"), 45, domain.StatusDelivered, domain.NewDate(2024, time.March, 15))
	require.NoError(t, err)
	galaxy, err := domain.NewOrder("2", "Samsung Galaxy S24", "Electronics", decimal.RequireFromString("999.99"), 5, domain.StatusOngoing, domain.NewDate(2024, time.March, 14))
	require.NoError(t, err)
	return fakeStore{"1": nike, "2": galaxy}
}

func TestOpenDetails(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()

	w.OpenDetails(store["1"])

	assert.Equal(t, State{SelectedOrderID: "1", ActiveModal: ModalDetails}, w.State())
	assert.True(t, w.State().HasSelection())
	assert.Equal(t, domain.StatusDelivered, store["1"].Status)
}

func TestOpenStatusChange_StagesCurrentStatus(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()
	w.OpenDetails(store["1"])

	w.OpenStatusChange(store["2"])

	assert.Equal(t, State{SelectedOrderID: "2", ActiveModal: ModalStatusChange, PendingStatus: domain.StatusOngoing}, w.State())
}

func TestOpen_OrderWithoutIDKeepsState(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()

	w.OpenDetails(domain.Order{})
	assert.Equal(t, idle(), w.State())
	w.OpenStatusChange(domain.Order{Status: domain.StatusOngoing})
	assert.Equal(t, idle(), w.State())

	w.OpenDetails(store["1"])
	w.OpenStatusChange(domain.Order{})
	assert.Equal(t, State{SelectedOrderID: "1", ActiveModal: ModalDetails}, w.State())
}

func TestCommit_AppliesPendingStatus(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	w := NewWorkflow()

	w.OpenStatusChange(store["2"])
	outcome, err := w.UpdatePending(ctx, store, domain.StatusDelivered)
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)

	change, outcome, err := w.Commit(ctx, store)
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	require.NotNil(t, change)
	assert.Equal(t, "2", change.OrderID)
	assert.Equal(t, domain.StatusOngoing, change.FromStatus)
	assert.Equal(t, domain.StatusDelivered, change.ToStatus)
	assert.Equal(t, domain.StatusDelivered, change.Order.Status)
	assert.Equal(t, store["2"].LastUpdated, change.Order.LastUpdated)
	assert.True(t, change.Changed())
	assert.Equal(t, State{ActiveModal: ModalNone}, w.State())
	// the store is only changed by whoever applies the event
	assert.Equal(t, domain.StatusOngoing, store["2"].Status)
}

func TestCommit_WithoutEditIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	w := NewWorkflow()

	w.OpenStatusChange(store["1"])
	change, outcome, err := w.Commit(ctx, store)

	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	assert.Equal(t, domain.StatusDelivered, change.Order.Status)
	assert.Equal(t, store["1"], change.Order)
	assert.False(t, change.Changed())
}

func TestCancel_DiscardsPending(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	w := NewWorkflow()

	w.OpenStatusChange(store["1"])
	_, err := w.UpdatePending(ctx, store, domain.StatusCancelled)
	require.NoError(t, err)
	w.Cancel()

	assert.Equal(t, State{ActiveModal: ModalNone}, w.State())
	change, outcome, err := w.Commit(ctx, store)
	require.NoError(t, err)
	assert.Nil(t, change)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, domain.StatusDelivered, store["1"].Status)
}

func TestClose_FromDetails(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()
	w.OpenDetails(store["1"])
	w.Close()
	assert.False(t, w.State().HasSelection())
}

func TestUpdatePending_OutsideStatusChangeIsIgnored(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	w := NewWorkflow()

	outcome, err := w.UpdatePending(ctx, store, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, State{ActiveModal: ModalNone}, w.State())

	w.OpenDetails(store["1"])
	outcome, err = w.UpdatePending(ctx, store, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, State{SelectedOrderID: "1", ActiveModal: ModalDetails}, w.State())
}

func TestUpdatePending_RejectsUnknownStatus(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()
	w.OpenStatusChange(store["1"])

	outcome, err := w.UpdatePending(context.Background(), store, domain.Status("Lost"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, domain.StatusDelivered, w.State().PendingStatus)
}

func TestCommit_FromDetailsIsIgnored(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()
	w.OpenDetails(store["1"])

	change, outcome, err := w.Commit(context.Background(), store)
	require.NoError(t, err)
	assert.Nil(t, change)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, ModalDetails, w.State().ActiveModal)
}

func TestStaleSelectionResets(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	w := NewWorkflow()

	w.OpenStatusChange(store["2"])
	delete(store, "2")

	outcome, err := w.UpdatePending(ctx, store, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, OutcomeStale, outcome)
	assert.Equal(t, State{ActiveModal: ModalNone}, w.State())

	store = seed(t)
	w.OpenStatusChange(store["2"])
	delete(store, "2")
	change, outcome, err := w.Commit(ctx, store)
	require.NoError(t, err)
	assert.Nil(t, change)
	assert.Equal(t, OutcomeStale, outcome)
	assert.Equal(t, State{ActiveModal: ModalNone}, w.State())
}

func TestCommit_TargetsSelectedIDAfterResort(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	collection := []domain.Order{store["1"], store["2"]}
	w := NewWorkflow()

	rows := query.VisibleRows(collection, query.DefaultCriteria())
	w.OpenStatusChange(rows[1])
	selected := rows[1].ID

	desc := query.ToggleSort(query.DefaultCriteria(), query.SortByName)
	rows = query.VisibleRows(collection, desc)
	require.NotEqual(t, selected, rows[1].ID)

	_, err := w.UpdatePending(ctx, store, domain.StatusCancelled)
	require.NoError(t, err)
	change, _, err := w.Commit(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, selected, change.OrderID)
}

func TestCommit_ResolverError(t *testing.T) {
	store := seed(t)
	w := NewWorkflow()
	w.OpenStatusChange(store["1"])
	boom := errors.New("boom")

	_, outcome, err := w.Commit(context.Background(), ResolverFunc(func(context.Context, string) (domain.Order, bool, error) {
		return domain.Order{}, false, boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, ModalStatusChange, w.State().ActiveModal)
}

func TestTouchLastUpdatedPolicy(t *testing.T) {
	ctx := context.Background()
	store := seed(t)
	fixed := time.Date(2024, time.April, 2, 9, 30, 0, 0, time.UTC)
	w := NewWorkflow(WithLastUpdatedPolicy(TouchLastUpdated), WithClock(func() time.Time { return fixed }))

	w.OpenStatusChange(store["2"])
	_, err := w.UpdatePending(ctx, store, domain.StatusCancelled)
	require.NoError(t, err)
	change, _, err := w.Commit(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(2024, time.April, 2), change.Order.LastUpdated)
	assert.Equal(t, domain.NewDate(2024, time.March, 14), change.PreviousLastUpdated)
	assert.Equal(t, fixed, change.OccurredAt())

	// unchanged status keeps the old date even when touching
	w.OpenStatusChange(store["1"])
	change, _, err = w.Commit(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, store["1"].LastUpdated, change.Order.LastUpdated)
	assert.False(t, change.Changed())
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name       string
		state      State
		guard      func(State) GuardResult
		wantAllow  bool
		wantReason string
	}{
		{"pending allowed in status modal", State{SelectedOrderID: "1", ActiveModal: ModalStatusChange}, CanUpdatePending, true, ""},
		{"pending refused in details", State{SelectedOrderID: "1", ActiveModal: ModalDetails}, CanUpdatePending, false, "pending status can only change in the status modal (active modal: details)"},
		{"commit refused when idle", idle(), CanCommit, false, "nothing to commit (active modal: none)"},
		{"commit refused without order", State{ActiveModal: ModalStatusChange}, CanCommit, false, "no order selected"},
		{"commit allowed", State{SelectedOrderID: "1", ActiveModal: ModalStatusChange}, CanCommit, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.guard(tt.state)
			assert.Equal(t, tt.wantAllow, result.Allowed)
			assert.Equal(t, tt.wantReason, result.Reason)
			if tt.wantAllow {
				assert.NoError(t, result.Error())
			} else {
				assert.EqualError(t, result.Error(), tt.wantReason)
			}
		})
	}
}

func TestParseLastUpdatedPolicy(t *testing.T) {
	p, err := ParseLastUpdatedPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PreserveLastUpdated, p)
	p, err = ParseLastUpdatedPolicy("Touch")
	require.NoError(t, err)
	assert.Equal(t, TouchLastUpdated, p)
	_, err = ParseLastUpdatedPolicy("sometimes")
	assert.Error(t, err)
}
