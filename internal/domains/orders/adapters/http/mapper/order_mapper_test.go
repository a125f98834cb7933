package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/query"
)

func TestToCriteria_DegradesMalformedInput(t *testing.T) {
	got := ToCriteria(Criteria{Search: "nike", Status: "Shipped", Date: "15/03/2024", Sort: "colour", Direction: "up"})

	assert.Equal(t, "nike", got.SearchTerm)
	assert.Equal(t, query.StatusAll, got.Status)
	assert.Nil(t, got.Date)
	assert.Equal(t, query.SortByName, got.SortKey)
	assert.Equal(t, query.Ascending, got.Direction)
}

func TestToCriteria_ParsesValidInput(t *testing.T) {
	got := ToCriteria(Criteria{Status: "ongoing", Date: "2024-03-15", Sort: "price", Direction: "desc"})

	assert.Equal(t, query.FilterFor(domain.StatusOngoing), got.Status)
	require.NotNil(t, got.Date)
	assert.Equal(t, domain.NewDate(2024, time.March, 15), *got.Date)
	assert.Equal(t, query.SortByPrice, got.SortKey)
	assert.Equal(t, query.Descending, got.Direction)

	assert.Equal(t, Criteria{Status: "Ongoing", Date: "2024-03-15", Sort: "price", Direction: "desc"}, FromCriteria(got))
}
