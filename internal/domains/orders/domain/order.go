package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Status enumerates order fulfillment states.
type Status string

const (
	StatusDelivered Status = "Delivered"
	StatusOngoing   Status = "Ongoing"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusDelivered, StatusOngoing, StatusCancelled}

var (
	ErrEmptyID          = errors.New("order id is required")
	ErrEmptyName        = errors.New("order name is required")
	ErrNegativePrice    = errors.New("price must be greater or equal to zero")
	ErrNegativeQuantity = errors.New("quantity must be greater or equal to zero")
	ErrInvalidStatus    = errors.New("order status is invalid")
)

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusDelivered, StatusOngoing, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus matches a status name case-insensitively.
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(raw, string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// Order is a purchased item row. Identity never changes; only Status and
// LastUpdated move, and only through WithStatus.
type Order struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Status      Status
	LastUpdated Date
}

// NewOrder validates and constructs an Order.
func NewOrder(id, name, category string, price decimal.Decimal, quantity int, status Status, lastUpdated Date) (Order, error) {
	order := Order{
		ID:          id,
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    quantity,
		Status:      status,
		LastUpdated: lastUpdated,
	}
	if err := order.Validate(); err != nil {
		return Order{}, err
	}
	return order, nil
}

// Validate enforces the record invariants.
func (o Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(o.Name) == "" {
		return ErrEmptyName
	}
	if o.Price.IsNegative() {
		return ErrNegativePrice
	}
	if o.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	if o.LastUpdated.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// WithStatus returns a copy carrying the new status and last-updated date.
func (o Order) WithStatus(status Status, lastUpdated Date) (Order, error) {
	if !status.Valid() {
		return Order{}, ErrInvalidStatus
	}
	if lastUpdated.IsZero() {
		return Order{}, ErrInvalidDate
	}
	o.Status = status
	o.LastUpdated = lastUpdated
	return o, nil
}
