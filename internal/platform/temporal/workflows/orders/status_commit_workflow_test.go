package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/order-board/internal/domains/orders/adapters/memory"
	"github.com/Apurer/order-board/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/order-board/internal/platform/temporal/activities/orders"
)

func newEnv(t *testing.T, repo *memory.Repository) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(StatusCommitWorkflow, workflow.RegisterOptions{Name: StatusCommitWorkflowName})
	env.RegisterActivityWithOptions(
		orderactivities.NewActivities(repo).PersistStatusChange,
		activity.RegisterOptions{Name: orderactivities.PersistStatusChangeActivityName},
	)
	return env
}

func seeded(t *testing.T) (*memory.Repository, domain.Order) {
	t.Helper()
	order, err := domain.NewOrder("2", "Samsung Galaxy S24", "Electronics", decimal.RequireFromString("999.99"), 5, domain.StatusOngoing, domain.NewDate(2024, time.March, 14))
	require.NoError(t, err)
	repo, err := memory.NewRepositoryWith([]domain.Order{order})
	require.NoError(t, err)
	return repo, order
}

func TestStatusCommitWorkflow_PersistsChange(t *testing.T) {
	repo, order := seeded(t)
	env := newEnv(t, repo)

	updated, err := order.WithStatus(domain.StatusDelivered, order.LastUpdated)
	require.NoError(t, err)
	change := domain.StatusChanged{
		OrderID:             order.ID,
		FromStatus:          order.Status,
		ToStatus:            domain.StatusDelivered,
		PreviousLastUpdated: order.LastUpdated,
		LastUpdated:         order.LastUpdated,
		Order:               updated,
	}

	env.ExecuteWorkflow(StatusCommitWorkflowName, StatusCommitWorkflowInput{Change: change, TraceID: "trace-1"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result domain.Order
	require.NoError(t, env.GetWorkflowResult(&result))
	assert.Equal(t, domain.StatusDelivered, result.Status)
	assert.True(t, decimal.RequireFromString("999.99").Equal(result.Price))

	stored, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, stored.Status)
}

func TestStatusCommitWorkflow_MissingOrderIsNotRetried(t *testing.T) {
	repo, _ := seeded(t)
	env := newEnv(t, repo)

	attempts := 0
	env.SetOnActivityStartedListener(func(*activity.Info, context.Context, converter.EncodedValues) {
		attempts++
	})
	change := domain.StatusChanged{OrderID: "42", ToStatus: domain.StatusCancelled, LastUpdated: domain.NewDate(2024, time.March, 1)}

	env.ExecuteWorkflow(StatusCommitWorkflowName, StatusCommitWorkflowInput{Change: change})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, orderactivities.ErrTypeOrderNotFound, appErr.Type())
	assert.Equal(t, 1, attempts)
}
