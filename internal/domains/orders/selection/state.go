// Package selection tracks which order is under interaction and which modal is
// open for it, and turns a staged status edit into a StatusChanged event.
package selection

import (
	"fmt"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
)

// Modal is the interaction mode currently shown for the selected order.
type Modal string

const (
	ModalNone         Modal = "none"
	ModalDetails      Modal = "details"
	ModalStatusChange Modal = "status_change"
)

// State is the read side of the workflow. SelectedOrderID is empty exactly
// when ActiveModal is ModalNone. PendingStatus only means something while
// ActiveModal is ModalStatusChange.
type State struct {
	SelectedOrderID string
	ActiveModal     Modal
	PendingStatus   domain.Status
}

func idle() State {
	return State{ActiveModal: ModalNone}
}

// HasSelection reports whether a modal is open.
func (s State) HasSelection() bool {
	return s.ActiveModal != ModalNone && s.SelectedOrderID != ""
}

// Outcome describes what a workflow call did.
type Outcome string

const (
	// OutcomeApplied means the call changed state as requested.
	OutcomeApplied Outcome = "applied"
	// OutcomeIgnored means the call was not valid in the current state and nothing changed.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeStale means the selected order no longer exists; the workflow reset to none.
	OutcomeStale Outcome = "stale"
)

// GuardResult is the outcome of a precondition check.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts a refused guard into an error.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanUpdatePending requires an open status-change modal.
func CanUpdatePending(s State) GuardResult {
	if s.ActiveModal != ModalStatusChange {
		return GuardResult{Reason: fmt.Sprintf("pending status can only change in the status modal (active modal: %s)", s.ActiveModal)}
	}
	return GuardResult{Allowed: true}
}

// CanCommit requires an open status-change modal bound to an order.
func CanCommit(s State) GuardResult {
	if s.ActiveModal != ModalStatusChange {
		return GuardResult{Reason: fmt.Sprintf("nothing to commit (active modal: %s)", s.ActiveModal)}
	}
	if s.SelectedOrderID == "" {
		return GuardResult{Reason: "no order selected"}
	}
	return GuardResult{Allowed: true}
}
