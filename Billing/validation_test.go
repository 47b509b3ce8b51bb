package Billing

import (
	"math"
	"testing"
	"time"
)

func validDraft() InvoiceDraft {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return InvoiceDraft{
		CustomerID:    7,
		InvoiceNumber: "INV-1042",
		IssueDate:     issue,
		DueDate:       issue.AddDate(0, 1, 0),
		Items: []LineItem{
			{Description: "Install", Quantity: 1, Rate: 5000, TaxRate: 7, Type: ItemService},
		},
	}
}

func hasKind(errs []ValidationError, kind ErrorKind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	if errs := Validate(validDraft()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	draft := validDraft()
	draft.CustomerID = 0
	draft.InvoiceNumber = "   "
	draft.Items[0].Description = ""

	errs := Validate(draft)
	for _, kind := range []ErrorKind{MissingCustomer, MissingInvoiceNumber, MissingDescription} {
		if !hasKind(errs, kind) {
			t.Errorf("expected %s in %v", kind, errs)
		}
	}
	if len(errs) != 3 {
		t.Errorf("expected exactly 3 errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateSingleViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InvoiceDraft)
		want   ErrorKind
	}{
		{"missing issue date", func(d *InvoiceDraft) { d.IssueDate = time.Time{} }, MissingIssueDate},
		{"missing due date", func(d *InvoiceDraft) { d.DueDate = time.Time{} }, MissingDueDate},
		{"no items", func(d *InvoiceDraft) { d.Items = nil }, NoItems},
		{"zero quantity", func(d *InvoiceDraft) { d.Items[0].Quantity = 0 }, InvalidQuantity},
		{"negative quantity", func(d *InvoiceDraft) { d.Items[0].Quantity = -2 }, InvalidQuantity},
		{"zero rate", func(d *InvoiceDraft) { d.Items[0].Rate = 0 }, InvalidRate},
		{"NaN rate", func(d *InvoiceDraft) { d.Items[0].Rate = math.NaN() }, InvalidRate},
		{"discount over 100", func(d *InvoiceDraft) { d.Items[0].Discount = 150 }, InvalidDiscount},
		{"negative tax rate", func(d *InvoiceDraft) { d.Items[0].TaxRate = -1 }, InvalidTaxRate},
		{"infinite adjustment", func(d *InvoiceDraft) { d.Adjustment = math.Inf(1) }, InvalidNumericInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(&draft)
			errs := Validate(draft)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
			}
			if errs[0].Kind != tt.want {
				t.Errorf("got kind %s, want %s", errs[0].Kind, tt.want)
			}
		})
	}
}

func TestValidateItemIndexes(t *testing.T) {
	draft := validDraft()
	draft.Items = append(draft.Items, LineItem{Description: "", Quantity: 2, Rate: 80})

	errs := Validate(draft)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Kind != MissingDescription || errs[0].ItemIndex != 1 {
		t.Errorf("expected MissingDescription on item index 1, got %+v", errs[0])
	}

	draft.CustomerID = 0
	errs = Validate(draft)
	if !hasKind(errs, MissingCustomer) {
		t.Fatal("expected MissingCustomer")
	}
	for _, e := range errs {
		if e.Kind == MissingCustomer && e.ItemIndex != -1 {
			t.Errorf("invoice-level error should carry ItemIndex -1, got %d", e.ItemIndex)
		}
	}
}

func TestValidateBackdatedDueDateAllowed(t *testing.T) {
	draft := validDraft()
	draft.DueDate = draft.IssueDate.AddDate(0, 0, -10)
	if errs := Validate(draft); len(errs) != 0 {
		t.Errorf("due date before issue date should be permitted, got %v", errs)
	}
}
