package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/order-board/internal/domains/orders/adapters/memory"
	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

func TestDefault_LoadsBuiltInOrders(t *testing.T) {
	orders, err := Default()
	require.NoError(t, err)
	require.Len(t, orders, 4)

	assert.Equal(t, "Nike Air Max", orders[0].Name)
	assert.True(t, decimal.RequireFromString("1299.99").Equal(orders[2].Price))
	assert.Equal(t, 0, orders[2].Quantity)
	assert.Equal(t, domain.StatusCancelled, orders[2].Status)
	assert.Equal(t, "Children's shoes", orders[3].Name)
	assert.Equal(t, domain.NewDate(2024, time.March, 15), orders[3].LastUpdated)
}

func TestLoad_AssignsIDsWhenMissing(t *testing.T) {
	doc := `
orders:
  - name: Lamp
    category: Home
    price: "12.50"
    quantity: 1
    status: ongoing
    lastUpdated: "2024-01-02"
`
	orders, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, orders, 1)
	_, err = uuid.Parse(orders[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, orders[0].Status)
}

func TestLoad_RejectsBadRecords(t *testing.T) {
	cases := map[string]string{
		"status":    `orders: [{id: "1", name: A, price: "1", status: Lost, lastUpdated: "2024-01-01"}]`,
		"date":      `orders: [{id: "1", name: A, price: "1", status: Ongoing, lastUpdated: "01/01/2024"}]`,
		"price":     `orders: [{id: "1", name: A, price: "cheap", status: Ongoing, lastUpdated: "2024-01-01"}]`,
		"negative":  `orders: [{id: "1", name: A, price: "-1", status: Ongoing, lastUpdated: "2024-01-01"}]`,
		"duplicate": `orders: [{id: "1", name: A, price: "1", status: Ongoing, lastUpdated: "2024-01-01"}, {id: "1", name: B, price: "1", status: Ongoing, lastUpdated: "2024-01-01"}]`,
		"unknown":   `orders: [{id: "1", name: A, colour: red, price: "1", status: Ongoing, lastUpdated: "2024-01-01"}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	orders, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestLoadFileOrDefault(t *testing.T) {
	orders, err := LoadFileOrDefault(" ")
	require.NoError(t, err)
	assert.Len(t, orders, 4)

	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`orders: [{id: "9", name: Desk, price: "80", quantity: 2, status: Delivered, lastUpdated: "2024-02-01"}]`), 0o600))
	orders, err = LoadFileOrDefault(path)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Desk", orders[0].Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply_SavesInOrder(t *testing.T) {
	orders, err := Default()
	require.NoError(t, err)
	repo := memory.NewRepository()

	n, err := Apply(context.Background(), repo, orders)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	listed, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 4)
	assert.Equal(t, "1", listed[0].ID)
	assert.Equal(t, "4", listed[3].ID)
}
