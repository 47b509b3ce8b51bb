package Billing

// ItemType classifies a line item as labor or material.
type ItemType string

const (
	ItemService ItemType = "Service"
	ItemProduct ItemType = "Product"
)

func (t ItemType) Valid() bool {
	return t == ItemService || t == ItemProduct
}

// InvoiceType is informational only; it never changes the totals.
type InvoiceType string

const (
	InvoiceTotalDue InvoiceType = "Total Due"
	InvoicePartial  InvoiceType = "Partial"
	InvoiceDeposit  InvoiceType = "Deposit"
)

func (t InvoiceType) Valid() bool {
	switch t {
	case InvoiceTotalDue, InvoicePartial, InvoiceDeposit:
		return true
	}
	return false
}

// AdjustmentKind is the fixed vocabulary for labelling the invoice-level
// adjustment amount.
type AdjustmentKind string

const (
	AdjustmentNonTax   AdjustmentKind = "Adjustment - Non tax"
	AdjustmentShipping AdjustmentKind = "Shipping"
	AdjustmentHandling AdjustmentKind = "Handling"
	AdjustmentOther    AdjustmentKind = "Other"
)

func (k AdjustmentKind) Valid() bool {
	switch k {
	case AdjustmentNonTax, AdjustmentShipping, AdjustmentHandling, AdjustmentOther:
		return true
	}
	return false
}

// LineItem is one billable row on an invoice.
type LineItem struct {
	Description         string
	DetailedDescription string
	Quantity            float64
	Rate                float64
	Discount            float64 // percent, 0-100
	TaxRate             float64 // percent, 0-100
	Type                ItemType
}
