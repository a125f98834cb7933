package mapper

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
	"github.com/Apurer/order-board/internal/domains/orders/query"
	"github.com/Apurer/order-board/internal/domains/orders/selection"
)

// Order is the JSON row shape.
type Order struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Status      string          `json:"status"`
	LastUpdated string          `json:"lastUpdated"`
}

// Criteria is both the request body for PUT /board/criteria and the
// criteria echoed back in responses. Fields are free text; anything that
// does not parse falls back to the neutral value.
type Criteria struct {
	Search    string `json:"search" form:"search"`
	Status    string `json:"status" form:"status"`
	Date      string `json:"date" form:"date"`
	Sort      string `json:"sort" form:"sort"`
	Direction string `json:"direction" form:"direction"`
}

// Selection mirrors selection.State.
type Selection struct {
	SelectedOrderID string `json:"selectedOrderId,omitempty"`
	ActiveModal     string `json:"activeModal"`
	PendingStatus   string `json:"pendingStatus,omitempty"`
}

// Board is the GET /board response.
type Board struct {
	Criteria      Criteria  `json:"criteria"`
	Selection     Selection `json:"selection"`
	SelectedOrder *Order    `json:"selectedOrder,omitempty"`
	Rows          []Order   `json:"rows"`
}

// PendingStatus is the PUT /board/selection/pending body.
type PendingStatus struct {
	Status string `json:"status" binding:"required"`
}

// CommitResult is the commit response.
type CommitResult struct {
	Outcome   string    `json:"outcome"`
	Changed   bool      `json:"changed"`
	Order     *Order    `json:"order,omitempty"`
	Selection Selection `json:"selection"`
}

func FromDomainOrder(o domain.Order) Order {
	return Order{
		ID:          o.ID,
		Name:        o.Name,
		Category:    o.Category,
		Price:       o.Price,
		Quantity:    o.Quantity,
		Status:      string(o.Status),
		LastUpdated: o.LastUpdated.String(),
	}
}

func FromDomainOrders(orders []domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

// ToCriteria degrades malformed values to their neutral element: a bad date
// drops the date filter, an unknown status means All, an unknown column
// means name, an unknown direction means ascending.
func ToCriteria(c Criteria) query.Criteria {
	out := query.DefaultCriteria()
	out.SearchTerm = c.Search
	out.Status = query.ParseStatusFilter(c.Status)
	if strings.TrimSpace(c.Date) != "" {
		if d, err := domain.ParseDate(c.Date); err == nil {
			out.Date = &d
		}
	}
	if key, ok := query.ParseSortKey(c.Sort); ok {
		out.SortKey = key
	}
	out.Direction = query.ParseDirection(c.Direction)
	return out
}

func FromCriteria(c query.Criteria) Criteria {
	out := Criteria{
		Search:    c.SearchTerm,
		Status:    string(c.Status),
		Sort:      string(c.SortKey),
		Direction: string(c.Direction),
	}
	if c.Date != nil {
		out.Date = c.Date.String()
	}
	return out
}

func FromSelection(s selection.State) Selection {
	out := Selection{SelectedOrderID: s.SelectedOrderID, ActiveModal: string(s.ActiveModal)}
	if s.ActiveModal == selection.ModalStatusChange {
		out.PendingStatus = string(s.PendingStatus)
	}
	return out
}

func FromBoard(v ports.BoardView) Board {
	board := Board{
		Criteria:  FromCriteria(v.Criteria),
		Selection: FromSelection(v.Selection),
		Rows:      FromDomainOrders(v.Rows),
	}
	if v.SelectedOrder != nil {
		selected := FromDomainOrder(*v.SelectedOrder)
		board.SelectedOrder = &selected
	}
	return board
}

func FromCommitResult(r ports.CommitResult) CommitResult {
	out := CommitResult{
		Outcome:   string(r.Outcome),
		Selection: FromSelection(r.Selection),
	}
	if r.Change != nil {
		out.Changed = r.Change.Changed()
	}
	if r.Order != nil {
		order := FromDomainOrder(*r.Order)
		out.Order = &order
	}
	return out
}
