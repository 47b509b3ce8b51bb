package Billing

import (
	"errors"
	"testing"
)

var allStatuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

func TestCanTransition(t *testing.T) {
	legal := map[Status][]Status{
		StatusDraft:     {StatusDraft, StatusSent},
		StatusSent:      {StatusPaid, StatusOverdue, StatusCancelled},
		StatusOverdue:   {StatusPaid, StatusCancelled},
		StatusPaid:      {},
		StatusCancelled: {},
	}

	for _, from := range allStatuses {
		allowed := map[Status]bool{}
		for _, to := range legal[from] {
			allowed[to] = true
		}
		for _, to := range allStatuses {
			if got := CanTransition(from, to); got != allowed[to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, allowed[to])
			}
		}
	}
}

func TestTransitionError(t *testing.T) {
	err := Transition(StatusPaid, StatusSent)
	if err == nil {
		t.Fatal("expected error for Paid -> Sent")
	}
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if te.From != StatusPaid || te.To != StatusSent {
		t.Errorf("TransitionError = %+v", te)
	}

	if err := Transition(StatusDraft, StatusSent); err != nil {
		t.Errorf("Draft -> Sent should be legal, got %v", err)
	}
}

func TestActionGuards(t *testing.T) {
	tests := []struct {
		status    Status
		canEmail  bool
		canPay    bool
		canRemind bool
	}{
		{StatusDraft, false, false, false},
		{StatusSent, true, true, true},
		{StatusOverdue, true, true, true},
		{StatusPaid, true, false, false},
		{StatusCancelled, true, false, false},
	}

	for _, tt := range tests {
		if got := CanEmail(tt.status); got != tt.canEmail {
			t.Errorf("CanEmail(%s) = %v, want %v", tt.status, got, tt.canEmail)
		}
		if got := CanPay(tt.status); got != tt.canPay {
			t.Errorf("CanPay(%s) = %v, want %v", tt.status, got, tt.canPay)
		}
		if got := CanRemind(tt.status); got != tt.canRemind {
			t.Errorf("CanRemind(%s) = %v, want %v", tt.status, got, tt.canRemind)
		}
	}

	if CanEmail(Status("bogus")) {
		t.Error("CanEmail should reject unknown statuses")
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range allStatuses {
		want := s == StatusPaid || s == StatusCancelled
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestDeletePolicy(t *testing.T) {
	for _, s := range allStatuses {
		if !DeleteAllowAlways.CanDelete(s) {
			t.Errorf("DeleteAllowAlways should permit deleting %s invoices", s)
		}
		want := s != StatusPaid
		if got := DeleteDenyPaid.CanDelete(s); got != want {
			t.Errorf("DeleteDenyPaid.CanDelete(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestParseDeletePolicy(t *testing.T) {
	if ParseDeletePolicy("always") != DeleteAllowAlways {
		t.Error(`ParseDeletePolicy("always") should allow deleting paid invoices`)
	}
	if ParseDeletePolicy("") != DeleteDenyPaid {
		t.Error("default delete policy should deny deleting paid invoices")
	}
	if ParseDeletePolicy("deny-paid") != DeleteDenyPaid {
		t.Error(`ParseDeletePolicy("deny-paid") should deny deleting paid invoices`)
	}
}
