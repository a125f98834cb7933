package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

func TestToggleSort(t *testing.T) {
	tests := []struct {
		name   string
		start  Criteria
		column SortKey
		want   Criteria
	}{
		{
			name:   "active column flips to descending",
			start:  Criteria{SortKey: SortByName, Direction: Ascending},
			column: SortByName,
			want:   Criteria{SortKey: SortByName, Direction: Descending},
		},
		{
			name:   "active column flips back to ascending",
			start:  Criteria{SortKey: SortByPrice, Direction: Descending},
			column: SortByPrice,
			want:   Criteria{SortKey: SortByPrice, Direction: Ascending},
		},
		{
			name:   "other column resets to ascending",
			start:  Criteria{SortKey: SortByName, Direction: Descending},
			column: SortByPrice,
			want:   Criteria{SortKey: SortByPrice, Direction: Ascending},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToggleSort(tt.start, tt.column))
		})
	}
}

func TestToggleSort_TwiceRestoresDirection(t *testing.T) {
	for _, dir := range []Direction{Ascending, Descending} {
		start := Criteria{SearchTerm: "x", Status: StatusAll, SortKey: SortByPrice, Direction: dir}
		assert.Equal(t, start, ToggleSort(ToggleSort(start, SortByPrice), SortByPrice))
	}
}

func TestToggleSort_KeepsFilters(t *testing.T) {
	d := domain.NewDate(2024, 3, 15)
	start := Criteria{SearchTerm: "nike", Status: FilterFor(domain.StatusDelivered), Date: &d, SortKey: SortByName}
	got := ToggleSort(start, SortByPrice)
	assert.Equal(t, "nike", got.SearchTerm)
	assert.Equal(t, FilterFor(domain.StatusDelivered), got.Status)
	assert.Same(t, &d, got.Date)
}

func TestParsers(t *testing.T) {
	assert.Equal(t, StatusAll, ParseStatusFilter("all"))
	assert.Equal(t, StatusAll, ParseStatusFilter("shipped"))
	assert.Equal(t, FilterFor(domain.StatusOngoing), ParseStatusFilter("ongoing"))

	key, ok := ParseSortKey("PRICE")
	assert.True(t, ok)
	assert.Equal(t, SortByPrice, key)
	_, ok = ParseSortKey("colour")
	assert.False(t, ok)

	assert.Equal(t, Descending, ParseDirection("DESC"))
	assert.Equal(t, Ascending, ParseDirection("sideways"))
}
