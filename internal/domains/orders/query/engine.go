package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// Engine projects a collection through Criteria.
type Engine struct {
	locale language.Tag
}

type Option func(*Engine)

// WithLocale sets the collation used for string columns.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{locale: language.English}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

var defaultEngine = NewEngine()

// VisibleRows runs the default engine.
func VisibleRows(collection []domain.Order, c Criteria) []domain.Order {
	return defaultEngine.VisibleRows(collection, c)
}

// VisibleRows returns the orders passing every filter predicate, stably sorted
// by the criteria's sort key. The input slice is left untouched.
func (e *Engine) VisibleRows(collection []domain.Order, c Criteria) []domain.Order {
	// Collators and casers keep scratch buffers, so each call gets its own.
	fold := cases.Fold()
	term := fold.String(c.SearchTerm)

	rows := make([]domain.Order, 0, len(collection))
	for _, order := range collection {
		if matches(order, c, term, fold) {
			rows = append(rows, order)
		}
	}

	compare := e.comparator(c.SortKey)
	if compare == nil {
		return rows
	}
	if c.Direction == Descending {
		asc := compare
		compare = func(a, b domain.Order) int { return -asc(a, b) }
	}
	slices.SortStableFunc(rows, compare)
	return rows
}

// Matches reports whether order passes the search, status and date predicates.
func Matches(order domain.Order, c Criteria) bool {
	fold := cases.Fold()
	return matches(order, c, fold.String(c.SearchTerm), fold)
}

func matches(order domain.Order, c Criteria, foldedTerm string, fold cases.Caser) bool {
	if foldedTerm != "" && !strings.Contains(fold.String(order.Name), foldedTerm) {
		return false
	}
	if c.Status != StatusAll && c.Status != "" && domain.Status(c.Status).Valid() && order.Status != domain.Status(c.Status) {
		return false
	}
	if c.Date != nil && !c.Date.IsZero() && order.LastUpdated != *c.Date {
		return false
	}
	return true
}

func (e *Engine) comparator(key SortKey) func(a, b domain.Order) int {
	switch key {
	case SortByName:
		col := collate.New(e.locale)
		return func(a, b domain.Order) int { return col.CompareString(a.Name, b.Name) }
	case SortByCategory:
		col := collate.New(e.locale)
		return func(a, b domain.Order) int { return col.CompareString(a.Category, b.Category) }
	case SortByPrice:
		return func(a, b domain.Order) int { return a.Price.Cmp(b.Price) }
	case SortByQuantity:
		return func(a, b domain.Order) int { return cmp.Compare(a.Quantity, b.Quantity) }
	case SortByLastUpdated:
		return func(a, b domain.Order) int { return a.LastUpdated.Compare(b.LastUpdated) }
	default:
		return nil
	}
}
