package Controllers

import (
	"testing"
	"time"

	"Solara/Billing"
	"Solara/Models"
)

func TestApplyRequestAdjustmentLabel(t *testing.T) {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 1, 0)

	tests := []struct {
		name        string
		adjustment  float64
		description string
		want        Billing.AdjustmentKind
		wantErr     bool
	}{
		{name: "explicit kind kept", adjustment: -50, description: "Shipping", want: Billing.AdjustmentShipping},
		{name: "non-zero adjustment defaults to Other", adjustment: -50, description: "", want: Billing.AdjustmentOther},
		{name: "positive adjustment defaults to Other", adjustment: 25, description: "", want: Billing.AdjustmentOther},
		{name: "zero adjustment stays unlabelled", adjustment: 0, description: "", want: ""},
		{name: "unknown kind rejected", adjustment: -50, description: "Rebate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Models.InvoiceRequest{
				CustomerID:            1,
				InvoiceNumber:         "INV-100",
				Adjustment:            tt.adjustment,
				AdjustmentDescription: tt.description,
			}
			var invoice Models.Invoice
			err := applyRequest(&invoice, &req, issue, due)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("applyRequest accepted description %q", tt.description)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyRequest returned error: %v", err)
			}
			if invoice.AdjustmentDescription != tt.want {
				t.Errorf("AdjustmentDescription = %q, want %q", invoice.AdjustmentDescription, tt.want)
			}
		})
	}
}

func TestApplyRequestInvoiceType(t *testing.T) {
	issue := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	due := issue.AddDate(0, 1, 0)

	var invoice Models.Invoice
	req := Models.InvoiceRequest{CustomerID: 1, InvoiceNumber: "INV-101"}
	if err := applyRequest(&invoice, &req, issue, due); err != nil {
		t.Fatalf("applyRequest returned error: %v", err)
	}
	if invoice.InvoiceType != Billing.InvoiceTotalDue {
		t.Errorf("empty invoice type = %q, want %q", invoice.InvoiceType, Billing.InvoiceTotalDue)
	}

	req.InvoiceType = "Installment"
	if err := applyRequest(&invoice, &req, issue, due); err == nil {
		t.Error("applyRequest accepted unknown invoice type")
	}
}

func TestRequestItemsOrderAndDefaults(t *testing.T) {
	req := Models.InvoiceRequest{
		Items: []Models.InvoiceItemRequest{
			{Description: "Panel installation", Quantity: 1, Rate: 500},
			{Description: "Inverter", Quantity: 1, Rate: 1200, Type: "Product"},
		},
	}

	items, err := requestItems(7, &req)
	if err != nil {
		t.Fatalf("requestItems returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	for i, item := range items {
		if item.InvoiceID != 7 {
			t.Errorf("item %d InvoiceID = %d, want 7", i, item.InvoiceID)
		}
		if item.ItemOrder != i+1 {
			t.Errorf("item %d ItemOrder = %d, want %d", i, item.ItemOrder, i+1)
		}
	}
	if items[0].Type != Billing.ItemService {
		t.Errorf("default item type = %q, want %q", items[0].Type, Billing.ItemService)
	}
	if items[1].Type != Billing.ItemProduct {
		t.Errorf("explicit item type = %q, want %q", items[1].Type, Billing.ItemProduct)
	}

	req.Items[0].Type = "Subscription"
	if _, err := requestItems(7, &req); err == nil {
		t.Error("requestItems accepted unknown item type")
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("2026-03-15")
	if err != nil {
		t.Fatalf("parseDate returned error: %v", err)
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	got, err = parseDate("  ")
	if err != nil {
		t.Fatalf("parseDate rejected blank input: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("blank input = %v, want zero time", got)
	}

	if _, err := parseDate("15/03/2026"); err == nil {
		t.Error("parseDate accepted non-ISO date")
	}
}
