package Billing

import "fmt"

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft     Status = "Draft"
	StatusSent      Status = "Sent"
	StatusPaid      Status = "Paid"
	StatusOverdue   Status = "Overdue"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// CanTransition reports whether moving an invoice from one status to another
// is legal. Draft -> Draft covers the ordinary edit/save cycle.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusDraft || to == StatusSent
	case StatusSent:
		return to == StatusPaid || to == StatusOverdue || to == StatusCancelled
	case StatusOverdue:
		return to == StatusPaid || to == StatusCancelled
	case StatusPaid, StatusCancelled:
		return false
	}
	return false
}

// TransitionError reports an attempted illegal status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal invoice status transition from %s to %s", e.From, e.To)
}

// Transition checks a status change against the lifecycle table.
func Transition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// CanEmail reports whether an invoice may be emailed to its customer.
// Draft invoices are never emailed directly; the send action both emails
// and advances a draft to Sent.
func CanEmail(s Status) bool {
	return s.Valid() && s != StatusDraft
}

// CanPay reports whether a payment may be recorded against the invoice.
func CanPay(s Status) bool {
	return CanTransition(s, StatusPaid)
}

// CanRemind reports whether a payment reminder makes sense for the invoice.
func CanRemind(s Status) bool {
	return s == StatusSent || s == StatusOverdue
}

// DeletePolicy decides which statuses an invoice may be deleted in. The
// legacy application allowed deleting in any status, paid invoices included;
// that behavior is kept available as an explicit choice rather than the
// default.
type DeletePolicy int

const (
	// DeleteDenyPaid blocks deletion of paid invoices.
	DeleteDenyPaid DeletePolicy = iota
	// DeleteAllowAlways permits deletion in any status.
	DeleteAllowAlways
)

func (p DeletePolicy) CanDelete(s Status) bool {
	if p == DeleteAllowAlways {
		return true
	}
	return s != StatusPaid
}

// ParseDeletePolicy maps a configuration value to a policy, defaulting to
// DeleteDenyPaid.
func ParseDeletePolicy(v string) DeletePolicy {
	if v == "always" {
		return DeleteAllowAlways
	}
	return DeleteDenyPaid
}
