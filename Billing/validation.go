package Billing

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrorKind discriminates validation failures so callers can format or
// localize them; the messages carried alongside are defaults.
type ErrorKind int

const (
	MissingCustomer ErrorKind = iota
	MissingInvoiceNumber
	MissingIssueDate
	MissingDueDate
	NoItems
	MissingDescription
	InvalidQuantity
	InvalidRate
	InvalidDiscount
	InvalidTaxRate
	InvalidNumericInput
)

func (k ErrorKind) String() string {
	switch k {
	case MissingCustomer:
		return "MissingCustomer"
	case MissingInvoiceNumber:
		return "MissingInvoiceNumber"
	case MissingIssueDate:
		return "MissingIssueDate"
	case MissingDueDate:
		return "MissingDueDate"
	case NoItems:
		return "NoItems"
	case MissingDescription:
		return "MissingDescription"
	case InvalidQuantity:
		return "InvalidQuantity"
	case InvalidRate:
		return "InvalidRate"
	case InvalidDiscount:
		return "InvalidDiscount"
	case InvalidTaxRate:
		return "InvalidTaxRate"
	case InvalidNumericInput:
		return "InvalidNumericInput"
	}
	return "Unknown"
}

// ValidationError is one collected violation. ItemIndex is -1 for
// invoice-level errors and the zero-based item position otherwise.
type ValidationError struct {
	Kind      ErrorKind `json:"-"`
	KindName  string    `json:"kind"`
	ItemIndex int       `json:"item_index"`
	Message   string    `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

// InvoiceDraft is the pre-persistence shape of an invoice as assembled by a
// caller. Zero dates mean the date was not supplied.
type InvoiceDraft struct {
	CustomerID    uint
	InvoiceNumber string
	IssueDate     time.Time
	DueDate       time.Time
	Items         []LineItem
	Adjustment    float64
}

// Validate collects every violation instead of stopping at the first, so a
// caller can surface all problems in one pass. An empty result means the
// draft may be persisted. No ordering between due date and issue date is
// enforced; backdated invoices are permitted.
func Validate(d InvoiceDraft) []ValidationError {
	var errs []ValidationError
	invoiceErr := func(kind ErrorKind, msg string) {
		errs = append(errs, ValidationError{Kind: kind, KindName: kind.String(), ItemIndex: -1, Message: msg})
	}

	if d.CustomerID == 0 {
		invoiceErr(MissingCustomer, "a customer must be selected")
	}
	if strings.TrimSpace(d.InvoiceNumber) == "" {
		invoiceErr(MissingInvoiceNumber, "invoice number is required")
	}
	if d.IssueDate.IsZero() {
		invoiceErr(MissingIssueDate, "issue date is required")
	}
	if d.DueDate.IsZero() {
		invoiceErr(MissingDueDate, "due date is required")
	}
	if len(d.Items) == 0 {
		invoiceErr(NoItems, "at least one line item is required")
	}
	if !isFinite(d.Adjustment) {
		invoiceErr(InvalidNumericInput, "adjustment must be a finite number")
	}

	for i, item := range d.Items {
		itemErr := func(kind ErrorKind, msg string) {
			errs = append(errs, ValidationError{
				Kind:      kind,
				KindName:  kind.String(),
				ItemIndex: i,
				Message:   fmt.Sprintf("item %d: %s", i+1, msg),
			})
		}
		if strings.TrimSpace(item.Description) == "" {
			itemErr(MissingDescription, "description is required")
		}
		if !isFinite(item.Quantity) || item.Quantity <= 0 {
			itemErr(InvalidQuantity, "quantity must be greater than zero")
		}
		if !isFinite(item.Rate) || item.Rate <= 0 {
			itemErr(InvalidRate, "rate must be greater than zero")
		}
		if !isFinite(item.Discount) || item.Discount < 0 || item.Discount > 100 {
			itemErr(InvalidDiscount, "discount must be between 0 and 100 percent")
		}
		if !isFinite(item.TaxRate) || item.TaxRate < 0 || item.TaxRate > 100 {
			itemErr(InvalidTaxRate, "tax rate must be between 0 and 100 percent")
		}
	}

	return errs
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
