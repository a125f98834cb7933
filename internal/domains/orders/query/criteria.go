// Package query derives the visible, ordered subset of orders from the full
// collection. Everything here is a pure function of its inputs.
package query

import (
	"strings"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// StatusFilter is either StatusAll or one of the order statuses.
type StatusFilter string

// StatusAll disables the status predicate.
const StatusAll StatusFilter = "All"

// FilterFor narrows the list to a single status.
func FilterFor(status domain.Status) StatusFilter {
	return StatusFilter(status)
}

// ParseStatusFilter maps free text to a filter; anything unrecognised is StatusAll.
func ParseStatusFilter(raw string) StatusFilter {
	status, err := domain.ParseStatus(raw)
	if err != nil {
		return StatusAll
	}
	return FilterFor(status)
}

// SortKey selects one of the sortable columns.
type SortKey string

const (
	SortByName        SortKey = "name"
	SortByPrice       SortKey = "price"
	SortByCategory    SortKey = "category"
	SortByQuantity    SortKey = "quantity"
	SortByLastUpdated SortKey = "lastUpdated"
)

// SortKeys lists the closed set of sortable columns.
var SortKeys = []SortKey{SortByName, SortByPrice, SortByCategory, SortByQuantity, SortByLastUpdated}

// ParseSortKey matches a column name case-insensitively.
func ParseSortKey(raw string) (SortKey, bool) {
	raw = strings.TrimSpace(raw)
	for _, key := range SortKeys {
		if strings.EqualFold(raw, string(key)) {
			return key, true
		}
	}
	return "", false
}

// Direction is the sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection returns Descending for "desc"/"descending", Ascending otherwise.
func ParseDirection(raw string) Direction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Criteria combines search, filter and sort parameters.
type Criteria struct {
	SearchTerm string
	Status     StatusFilter
	// Date, when set, keeps only orders last updated on exactly that day.
	Date      *domain.Date
	SortKey   SortKey
	Direction Direction
}

// DefaultCriteria is the initial view: everything, sorted by name ascending.
func DefaultCriteria() Criteria {
	return Criteria{
		Status:    StatusAll,
		SortKey:   SortByName,
		Direction: Ascending,
	}
}

// ToggleSort applies a column-header click. Clicking the active column flips
// the direction; clicking another column selects it ascending.
func ToggleSort(c Criteria, column SortKey) Criteria {
	if c.SortKey == column {
		c.Direction = c.Direction.Flip()
		return c
	}
	c.SortKey = column
	c.Direction = Ascending
	return c
}
