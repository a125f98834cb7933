package domain

import "time"

// StatusChanged is the mutation produced by committing a staged status edit.
// Order holds the updated record; the stored record is untouched until the
// event is applied.
type StatusChanged struct {
	OrderID             string
	FromStatus          Status
	ToStatus            Status
	PreviousLastUpdated Date
	LastUpdated         Date
	Order               Order
	Timestamp           time.Time
}

// EventName returns the event type identifier.
func (e StatusChanged) EventName() string {
	return "orders.order.status_changed"
}

// OccurredAt returns when the commit happened.
func (e StatusChanged) OccurredAt() time.Time {
	return e.Timestamp
}

// Changed reports whether applying the event alters the stored record.
func (e StatusChanged) Changed() bool {
	return e.FromStatus != e.ToStatus || e.PreviousLastUpdated != e.LastUpdated
}
